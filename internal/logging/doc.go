// Package logging provides the unified logging interface for the comparison
// bench. It abstracts the underlying backend so components log consistently
// whether output goes through zerolog or a plain standard-library logger.
package logging
