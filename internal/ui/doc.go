// Package ui provides semantic text formatting for CLI output that
// degrades gracefully when color is unavailable or disabled.
package ui
