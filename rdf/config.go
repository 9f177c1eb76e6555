package rdf

import (
	"fmt"
	"strconv"

	"github.com/nmtools/rdfkit/internal/format"
)

// Config is the RDF configuration sub-record. Its layout is the same in both
// generations and its major version selects the layout of everything else.
type Config struct {
	view
}

func (f *File) readConfig() (*Config, error) {
	rec, _, err := f.readRecord(format.SlotConfig, format.ConfigLayout)
	if err != nil {
		return nil, err
	}
	c := &Config{view{rec: rec}}
	c.dict = c.buildDictionary()
	return c, nil
}

func (c *Config) MajorVersion() uint32    { return c.rec.U32(format.ConfigMajorVersion) }
func (c *Config) MinorVersion() uint32    { return c.rec.U32(format.ConfigMinorVersion) }
func (c *Config) IsComplete() bool        { return c.rec.U32(format.ConfigRDFComplete) != 0 }
func (c *Config) DeadTimeVersion() uint32 { return c.rec.U32(format.ConfigDeadTimeVersion) }
func (c *Config) SinglesVersion() uint32  { return c.rec.U32(format.ConfigSinglesVersion) }
func (c *Config) IsListFile() bool        { return c.rec.U32(format.ConfigIsListFile) != 0 }
func (c *Config) FileSizeInBytes() uint64 { return c.rec.U64(format.ConfigFileSizeInBytes) }

// VersionNumber returns "major.minor" as a float. When that text does not
// parse it returns -1 and ErrVersionUnparseable; callers treat this as a
// warning, not a decode failure.
func (c *Config) VersionNumber() (float64, error) {
	return parseVersion(c.MajorVersion(), c.MinorVersion())
}

func parseVersion(major, minor uint32) (float64, error) {
	return versionNumber(fmt.Sprintf("%d.%d", major, minor))
}

// versionNumber parses version text, yielding -1 and ErrVersionUnparseable
// for anything that is not a number.
func versionNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return -1, fmt.Errorf("%q: %w", s, ErrVersionUnparseable)
	}
	return v, nil
}

func (c *Config) buildDictionary() *Dictionary {
	d := newDictionary()
	v, err := c.VersionNumber()
	if err != nil {
		logWarn("config", err)
	}
	d.float("VERSION_NUMBER", v)
	d.uint("IS_COMPLETE_RDF", uint64(c.rec.U32(format.ConfigRDFComplete)))
	d.uint("DEADTIME_VERSION", uint64(c.DeadTimeVersion()))
	d.uint("SINGLES_VERSION", uint64(c.SinglesVersion()))
	d.uint("IS_LISTMODE", uint64(c.rec.U32(format.ConfigIsListFile)))
	d.uint("FILE_SIZE", c.FileSizeInBytes())
	return d
}
