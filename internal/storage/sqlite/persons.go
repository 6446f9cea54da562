package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonludena/friendbook/internal/models"
	"github.com/jonludena/friendbook/internal/storage"
)

// CountPersons returns the number of person records.
func (s *SQLiteStore) CountPersons(ctx context.Context) (int32, error) {
	var count int32
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM persons").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count persons: %w", err)
	}
	return count, nil
}

// ListPersons retrieves persons matching the phone filter. The filter is on
// whether a phone is on record (SQL NULL), never on its contents.
func (s *SQLiteStore) ListPersons(ctx context.Context, filter storage.PhoneFilter) ([]models.Person, error) {
	query := "SELECT id, name, age, phone, street, city, created_at FROM persons"
	switch filter {
	case storage.PhoneSet:
		query += " WHERE phone IS NOT NULL"
	case storage.PhoneUnset:
		query += " WHERE phone IS NULL"
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	defer rows.Close()

	persons := []models.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		persons = append(persons, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate persons: %w", err)
	}

	return persons, nil
}

// GetPersonByName retrieves the first person with the given name.
// Returns nil when no person matches.
func (s *SQLiteStore) GetPersonByName(ctx context.Context, name string) (*models.Person, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, age, phone, street, city, created_at FROM persons WHERE name = ? ORDER BY created_at, id LIMIT 1",
		name,
	)

	p, err := scanPerson(row)
	if err == sql.ErrNoRows {
		return nil, nil // Person not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person by name: %w", err)
	}
	return p, nil
}

// CreatePerson validates and persists a new person.
func (s *SQLiteStore) CreatePerson(ctx context.Context, person *models.Person) error {
	if err := s.checkShape(person); err != nil {
		return err
	}

	// Generate ID if not set
	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	if person.CreatedAt == 0 {
		person.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO persons (id, name, age, phone, street, city, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		person.ID, person.Name, person.Age, person.Phone, person.Street, person.City, person.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}

	return nil
}

// UpdatePerson validates and persists changes to an existing person.
func (s *SQLiteStore) UpdatePerson(ctx context.Context, person *models.Person) error {
	if err := s.checkShape(person); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE persons SET name = ?, age = ?, phone = ?, street = ?, city = ? WHERE id = ?",
		person.Name, person.Age, person.Phone, person.Street, person.City, person.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("person not found: %s", person.ID)
	}

	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanPerson.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPerson(row scanner) (*models.Person, error) {
	p := &models.Person{}
	var phone sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Age, &phone, &p.Street, &p.City, &p.CreatedAt); err != nil {
		return nil, err
	}
	if phone.Valid {
		p.Phone = &phone.String
	}
	return p, nil
}
