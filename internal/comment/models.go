package comment

import (
	"strings"
	"time"
)

// Comment is a text note attached to a movie. Username is self-declared by
// the caller; it is not a verified identity.
type Comment struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	Username  string    `json:"username"`
	MovieID   string    `json:"movieId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedBy reports whether the asserted username, trimmed, equals the stored
// one exactly. Case differences do not match.
func (c *Comment) OwnedBy(username string) bool {
	return c.Username == strings.TrimSpace(username)
}
