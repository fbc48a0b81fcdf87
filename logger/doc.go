// Package logger provides structured logging for the transcriber CLI
// using zerolog.
//
// All log output goes to standard error by default: standard output is
// reserved for the single JSON result document each invocation emits.
package logger
