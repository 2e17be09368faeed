// Package format provides pure formatting helpers shared by the console
// presenters.
package format
