// model/prefs.go
package model

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	ViewGrid = "grid"
	ViewList = "list"
)

// Prefs are the durable per-session UI preferences.
type Prefs struct {
	Theme string `json:"theme"`
	View  string `json:"view_preference"`
}

// DefaultPrefs mirrors the first-visit state: light theme, grid view.
func DefaultPrefs() Prefs {
	return Prefs{Theme: ThemeLight, View: ViewGrid}
}
