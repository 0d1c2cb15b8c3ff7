// Package theme lists the built-in colour palettes.
package theme

import (
	"errors"

	"arionfm/shared/go/models"
)

// DefaultID is the theme a new session starts with.
const DefaultID = "caribbean"

// ErrUnknownTheme is returned by Lookup for ids outside the catalogue.
var ErrUnknownTheme = errors.New("unknown theme")

var catalogue = []models.Theme{
	{ID: "caribbean", Name: "Caribbean Cove", Colors: models.ThemeColors{
		Deep: "#083344", Ocean: "#0e7490", Turquoise: "#2dd4bf", Sand: "#fef3c7", Coral: "#fb7185", Sun: "#fbbf24"}},
	{ID: "cyberpunk", Name: "Midnight Neon", Colors: models.ThemeColors{
		Deep: "#0f0518", Ocean: "#2e1065", Turquoise: "#d946ef", Sand: "#fae8ff", Coral: "#06b6d4", Sun: "#facc15"}},
	{ID: "volcanic", Name: "Sunset Boulevard", Colors: models.ThemeColors{
		Deep: "#2a0a0a", Ocean: "#7c2d12", Turquoise: "#fb923c", Sand: "#fff7ed", Coral: "#ef4444", Sun: "#f59e0b"}},
	{ID: "forest", Name: "Forest Whisper", Colors: models.ThemeColors{
		Deep: "#022c22", Ocean: "#166534", Turquoise: "#4ade80", Sand: "#ecfccb", Coral: "#a3e635", Sun: "#fcd34d"}},
	{ID: "royal", Name: "Royal Velvet", Colors: models.ThemeColors{
		Deep: "#172554", Ocean: "#1e3a8a", Turquoise: "#60a5fa", Sand: "#eff6ff", Coral: "#f43f5e", Sun: "#fbbf24"}},
	{ID: "cherry", Name: "Cherry Blossom", Colors: models.ThemeColors{
		Deep: "#4a044e", Ocean: "#86198f", Turquoise: "#f472b6", Sand: "#fdf2f8", Coral: "#fb7185", Sun: "#fde047"}},
	{ID: "monochrome", Name: "Matrix Code", Colors: models.ThemeColors{
		Deep: "#020617", Ocean: "#0f172a", Turquoise: "#22c55e", Sand: "#f0fdf4", Coral: "#ef4444", Sun: "#eab308"}},
}

// All returns the themes in display order.
func All() []models.Theme {
	out := make([]models.Theme, len(catalogue))
	copy(out, catalogue)
	return out
}

// Lookup finds a theme by id.
func Lookup(id string) (models.Theme, error) {
	for _, t := range catalogue {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Theme{}, ErrUnknownTheme
}
