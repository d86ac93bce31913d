// Package logger builds the zap loggers used by the commands and the HTTP server.
//
// # Log Sink
//
// When Config.File is set the logger appends to that file, which becomes the
// persistent record of every comparison run. Console additionally keeps the
// stderr output. Without a File the logger writes to stderr only.
//
// # Context Awareness
//
// WithRayID extracts the RayID from a Fiber context and attaches it to the
// log entry, so every line of a request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", File: "dbcompare.log"})
//	log.Info("run started", zap.String("run_id", id))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("comparison failed", zap.Error(err))
package logger
