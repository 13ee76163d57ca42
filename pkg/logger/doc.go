// Package logger builds configured log/slog loggers for the decoder's
// commands and servers: JSON or text output, static attributes, and
// context extractors that attach request-scoped values (request id) to
// every record.
package logger
