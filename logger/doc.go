// Package logger provides adapters for popular logger libraries to work
// with bptree's Logger interface.
//
// The adapters allow you to use your existing logger with bptree without
// writing boilerplate. Note that the standard library's slog.Logger already
// implements bptree.Logger directly.
//
// Example with zap:
//
//	zapLogger, _ := zap.NewProduction()
//	tree := bptree.NewOrdered[int](bptree.WithLogger(logger.NewZap(zapLogger)))
package logger
