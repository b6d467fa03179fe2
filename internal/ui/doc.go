// Package ui holds the terminal color themes shared by every presentation
// layer. Themes resolve to raw ANSI escape codes so the CLI can style output
// without dragging a rendering framework into the hot path; the NO_COLOR
// convention and non-TTY detection both collapse to the colorless theme.
package ui
