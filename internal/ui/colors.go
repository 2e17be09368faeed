package ui

// Color accessors return the escape code of the active theme, or "" when
// colors are disabled.

func ColorReset() string   { return GetCurrentTheme().Reset }
func ColorRed() string     { return GetCurrentTheme().Error }
func ColorYellow() string  { return GetCurrentTheme().Warning }
func ColorMagenta() string { return GetCurrentTheme().Primary }
func ColorCyan() string    { return GetCurrentTheme().Secondary }
