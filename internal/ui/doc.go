// Package ui provides the ANSI themes and lipgloss table palettes used by the
// console presenters. Colors are off unless stdout is a terminal, so benchmark
// rows written to a pipe or file never contain escape codes.
package ui
