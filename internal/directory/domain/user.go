package domain

import "time"

// User is a registered account. Hearts holds the ids of stores the
// user has favourited.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Hearts       []string
	CreatedAt    time.Time
}

// HasHearted reports whether the user already favourited the store.
func (u *User) HasHearted(storeID string) bool {
	for _, id := range u.Hearts {
		if id == storeID {
			return true
		}
	}
	return false
}
