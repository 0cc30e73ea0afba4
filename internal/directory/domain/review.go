package domain

import "time"

// Review is a rating left on a store. The directory core reads reviews
// but never writes them; their lifecycle belongs to the review
// collaborator.
type Review struct {
	ID        string
	StoreID   string
	AuthorID  string
	Text      string
	Rating    float64
	CreatedAt time.Time
}
