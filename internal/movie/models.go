package movie

import "time"

// Movie is a catalog record. ID, CreatedAt and UpdatedAt are assigned by the store.
type Movie struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateInput carries the fields required to create a movie.
type CreateInput struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Category    *string `json:"category,omitempty"`
	Image       *string `json:"image,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply overwrites the supplied fields of m.
func (p Patch) Apply(m *Movie) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Image != nil {
		m.Image = *p.Image
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
}
