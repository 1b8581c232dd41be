package models

import "time"

// Location is a named place scoped to one country. The (name, country) pair
// is the primary key; a location cannot be deleted while assets reference it.
type Location struct {
	Name    string  `gorm:"primaryKey;size:120" json:"name"`
	Country Country `gorm:"primaryKey;size:20" json:"country"`

	CreatedAt time.Time `json:"created_at"`
}
