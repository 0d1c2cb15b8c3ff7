package models

// ThemeColors are the palette slots the front end maps to CSS variables.
type ThemeColors struct {
	Deep      string `json:"deep"`
	Ocean     string `json:"ocean"`
	Turquoise string `json:"turquoise"`
	Sand      string `json:"sand"`
	Coral     string `json:"coral"`
	Sun       string `json:"sun"`
}

// Theme is a named colour palette.
type Theme struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Colors ThemeColors `json:"colors"`
}
