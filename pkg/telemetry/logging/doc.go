// Package logging wraps log/slog with configuration parsing and context
// fields.
//
//	logger, err := logging.New(logging.Config{Level: "debug", Format: "json"})
//	if err != nil {
//	    return err
//	}
//	logger.SetDefault()
//
// Components then derive their loggers from slog.Default():
//
//	log := slog.Default().With("component", "table.recorder")
//
// Values stored with WithRequestID, WithDocumentID, WithSheet and WithFormat
// are added to every record logged through the *Context methods.
package logging
