// Package logger is the leveled diagnostic logger used by the comparison
// helpers to report unreadable files and reporter failures.
//
//	log := logger.NewLogger(logger.LevelDebug, os.Stderr)
//	log.Error("file opening error", logger.F("path", "missing.h"))
//
// Lines look like:
//
//	2010-01-15 10:04:05 [ERROR] file opening error | path=missing.h
package logger
