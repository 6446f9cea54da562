// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/jonludena/friendbook/internal/models"
)

// PhoneFilter narrows person listings by whether a phone number is on
// record. This is an existence filter, not a truthiness filter: an
// empty-string phone still counts as present.
type PhoneFilter int

const (
	// PhoneAny returns every person.
	PhoneAny PhoneFilter = iota
	// PhoneSet returns only persons with a phone on record.
	PhoneSet
	// PhoneUnset returns only persons without a phone on record.
	PhoneUnset
)

// Store defines the interface for person and user storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// a document store, etc.) without changing the API layer.
type Store interface {
	// CountPersons returns the number of person records.
	CountPersons(ctx context.Context) (int32, error)

	// ListPersons retrieves persons matching the phone filter.
	ListPersons(ctx context.Context, filter PhoneFilter) ([]models.Person, error)

	// GetPersonByName retrieves the first person with the given name.
	// Returns nil (and no error) when no person matches.
	GetPersonByName(ctx context.Context, name string) (*models.Person, error)

	// CreatePerson validates and persists a new person. The ID and
	// CreatedAt fields are populated by the store. Shape violations are
	// reported as *ValidationError.
	CreatePerson(ctx context.Context, person *models.Person) error

	// UpdatePerson validates and persists changes to an existing person.
	UpdatePerson(ctx context.Context, person *models.Person) error

	// CreateUser validates and persists a new user with no friends.
	// Username uniqueness and minimum-length violations are reported as
	// *ValidationError.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by username, friends resolved.
	// Returns nil (and no error) when no user matches.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves a user by ID with the friend references
	// dereferenced into full person records (one level only).
	// Returns nil (and no error) when no user matches.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// AddFriend atomically appends the person to the user's friend list.
	// Returns ErrDuplicateFriend if the person is already a friend, so
	// concurrent appends of the same person cannot both succeed.
	AddFriend(ctx context.Context, userID, personID string) error

	// Close releases any resources held by the store.
	Close() error
}
