package format

import "errors"

var (
	// ErrInvalidFormat indicates the byte-order marker did not match in either order.
	ErrInvalidFormat = errors.New("format: not an RDF file")
	// ErrTruncated indicates the source lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated data")
	// ErrUnsupportedCompression indicates a compressed listmode payload.
	ErrUnsupportedCompression = errors.New("format: compressed listmode is not supported")
	// ErrUnsupportedVersion indicates a config major version with no known layout.
	ErrUnsupportedVersion = errors.New("format: unsupported schema version")
	// ErrFieldTooLong indicates a value exceeds its padded field's nominal length.
	ErrFieldTooLong = errors.New("format: value exceeds field length")
	// ErrUnrecognizedRecord indicates a listmode record of a known size but unknown kind.
	ErrUnrecognizedRecord = errors.New("format: unrecognized listmode record")
	// ErrDestinationExists indicates write-back would overwrite an existing file.
	ErrDestinationExists = errors.New("format: destination already exists")
	// ErrSameSourceAndDestination indicates write-back was asked to overwrite its input.
	ErrSameSourceAndDestination = errors.New("format: source and destination are the same file")
	// ErrVersionUnparseable is soft: the version number falls back to -1.
	ErrVersionUnparseable = errors.New("format: version number unparseable")
	// ErrNotReady indicates a sub-record that was never decoded.
	ErrNotReady = errors.New("format: sub-record not decoded")
	// ErrKeyNotFound indicates a dictionary lookup miss.
	ErrKeyNotFound = errors.New("format: key not found")
	// ErrInvalidPosition indicates a stream position from another reader or out of range.
	ErrInvalidPosition = errors.New("format: invalid stream position")
	// ErrRecordAbsent indicates an offset table slot of zero.
	ErrRecordAbsent = errors.New("format: sub-record absent")
	// ErrInvalidUID indicates a value that is not a syntactically valid DICOM UID.
	ErrInvalidUID = errors.New("format: invalid UID")
)
