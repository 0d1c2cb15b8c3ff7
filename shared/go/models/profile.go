package models

import "time"

// ProfileRowID is the fixed key of the singleton artist profile row.
const ProfileRowID = 1

// Stat is one headline number on the artist profile.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ArtistProfile is the editable artist page.
type ArtistProfile struct {
	Image     string    `json:"image" db:"image_url"`
	Name      string    `json:"name" db:"name"`
	Tagline   string    `json:"tagline" db:"tagline"`
	Bio       string    `json:"bio" db:"bio"`
	Stats     []Stat    `json:"stats" db:"stats"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}
