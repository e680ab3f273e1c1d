// Package ui holds the color themes shared by the calculator's line-oriented
// output (REPL, batch results, calibration tables) and the lipgloss palette of
// the terminal UI.
package ui
