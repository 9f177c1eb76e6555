package listmode

import "github.com/nmtools/rdfkit/internal/format"

var (
	ErrUnsupportedCompression = format.ErrUnsupportedCompression
	ErrUnrecognizedRecord     = format.ErrUnrecognizedRecord
	ErrInvalidPosition        = format.ErrInvalidPosition
	ErrTruncated              = format.ErrTruncated
)
