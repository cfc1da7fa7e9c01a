// Package logger provides leveled, colored CLI logging. Info output is
// gated behind --verbose and debug output behind --debug; warnings and
// errors always print to stderr.
package logger
