package models

import "time"

// SavedComposition is the record kept for every successful export
// capture+upload. It owns a full denormalized copy of the theme at export
// time so a later restore reproduces the exact composition even if the
// live theme has since changed. Records are never mutated after creation.
type SavedComposition struct {
	ID            string    `json:"id"`
	ImageURL      string    `json:"imageUrl"`
	StoragePath   string    `json:"storagePath"`
	FormatName    string    `json:"formatName"`
	CreatedAt     time.Time `json:"createdAt"`
	ThemeSnapshot *Theme    `json:"themeSnapshot"`
}
