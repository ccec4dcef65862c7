package ui

// ColorReset returns the sequence that clears formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error colour.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success colour.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning colour.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary accent colour.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the info colour.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the primary accent colour. Cyan and blue share a slot in
// the 256-colour themes.
func ColorCyan() string { return GetCurrentTheme().Primary }

// ColorBold returns the bold sequence.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline sequence.
func ColorUnderline() string { return GetCurrentTheme().Underline }
