package models

// User represents a registered account.
//
// Friends is physically an ordered list but a set in intent: no person
// identifier may appear twice. The store enforces this on write.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is unique across all users, minimum 3 characters.
	Username string `validate:"required,min=3"`

	// Friends holds the user's friends with the full person records
	// resolved (one-level dereference at read time).
	Friends []Person

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// Future fields to consider:
	// - PasswordHash string (per-account credentials; login currently
	//   verifies against a single configured secret)
}

// HasFriend reports whether the person identifier is already present in
// the user's friend list.
func (u *User) HasFriend(personID string) bool {
	for _, f := range u.Friends {
		if f.ID == personID {
			return true
		}
	}
	return false
}
