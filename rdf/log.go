package rdf

import "github.com/nmtools/rdfkit/internal/logging"

func logWarn(record string, err error) {
	logging.L().Warn().Str("record", record).Err(err).Msg("soft decode failure")
}
