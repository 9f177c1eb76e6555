package rdf

import "github.com/nmtools/rdfkit/internal/format"

// Errors returned by this package and rdf/listmode. Compare with errors.Is.
var (
	ErrInvalidFormat            = format.ErrInvalidFormat
	ErrTruncated                = format.ErrTruncated
	ErrUnsupportedCompression   = format.ErrUnsupportedCompression
	ErrUnsupportedVersion       = format.ErrUnsupportedVersion
	ErrFieldTooLong             = format.ErrFieldTooLong
	ErrUnrecognizedRecord       = format.ErrUnrecognizedRecord
	ErrDestinationExists        = format.ErrDestinationExists
	ErrSameSourceAndDestination = format.ErrSameSourceAndDestination
	ErrVersionUnparseable       = format.ErrVersionUnparseable
	ErrNotReady                 = format.ErrNotReady
	ErrKeyNotFound              = format.ErrKeyNotFound
	ErrInvalidPosition          = format.ErrInvalidPosition
	ErrInvalidUID               = format.ErrInvalidUID
	ErrRecordAbsent             = format.ErrRecordAbsent
)

// Schema identifies a header layout generation.
type Schema = format.Schema

const (
	SchemaAuto = format.SchemaUnknown
	SchemaV7   = format.SchemaV7
	SchemaV8   = format.SchemaV8
)

// OffsetTable is the decoded file prefix.
type OffsetTable = format.OffsetTable

// Slot indexes the offset table.
type Slot = format.Slot
