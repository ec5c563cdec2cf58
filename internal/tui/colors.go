package tui

// Color constants for the truant TUI theme
const (
	// Base Colors
	ColorCardBackground = "#1B1530" // Dark purple
	ColorBorder         = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383"
	ColorHelpText      = "240"

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED"
	ColorAccentBright = "#A78BFA"

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"
)

// StatusColor picks the accent for a status value; unknown or missing
// statuses are muted
func StatusColor(value string) string {
	switch value {
	case "done":
		return ColorSuccess
	case "in-progress":
		return ColorWarning
	case "new":
		return ColorAccentBright
	}
	return ColorDisabledText
}

// PriorityColor picks the accent for a priority value
func PriorityColor(value string) string {
	switch value {
	case "very-high":
		return ColorError
	case "high":
		return ColorWarning
	case "medium":
		return ColorAccentBright
	}
	return ColorSecondaryText
}
