package models

// Person represents an address-book contact.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string

	// Name is the person's display name. Names are not unique; lookups by
	// name return the first match.
	Name string `validate:"required"`

	// Age in years.
	Age int32 `validate:"gte=0"`

	// Phone is the person's phone number. nil means no phone on record;
	// an empty string is still a phone on record.
	Phone *string

	// Street and City make up the person's address.
	Street string `validate:"required"`
	City   string `validate:"required"`

	// CreatedAt is the Unix timestamp when the person was created.
	CreatedAt int64
}
