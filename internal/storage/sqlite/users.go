package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonludena/friendbook/internal/models"
	"github.com/jonludena/friendbook/internal/storage"
)

// CreateUser validates and inserts a new user with an empty friend list.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.checkShape(user); err != nil {
		return err
	}

	// Existence pre-check gives a friendly error; the UNIQUE column is the
	// backstop against races.
	existing, err := s.GetUserByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return &storage.ValidationError{Fields: map[string]string{"username": "is already taken"}}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, created_at) VALUES (?, ?, ?)",
		user.ID, user.Username, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &storage.ValidationError{Fields: map[string]string{"username": "is already taken"}}
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByUsername retrieves a user by username with friends resolved.
// Returns nil when no user matches.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, "username", username)
}

// GetUserByID retrieves a user by ID with friends resolved.
// Returns nil when no user matches.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *SQLiteStore) getUser(ctx context.Context, column, value string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id, username, created_at FROM users WHERE %s = ?", column),
		value,
	).Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}

	friends, err := s.friendsOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Friends = friends

	return user, nil
}

// friendsOf dereferences the user's friend list into full person records,
// preserving insertion order. One-level expansion only: persons carry no
// further references.
func (s *SQLiteStore) friendsOf(ctx context.Context, userID string) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.age, p.phone, p.street, p.city, p.created_at
		FROM friends f
		JOIN persons p ON p.id = f.person_id
		WHERE f.user_id = ?
		ORDER BY f.position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}
	defer rows.Close()

	friends := []models.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friends: %w", err)
	}

	return friends, nil
}

// AddFriend appends the person to the user's friend list. The composite
// primary key makes the append atomic: a concurrent duplicate insert loses
// at the constraint and surfaces as ErrDuplicateFriend.
func (s *SQLiteStore) AddFriend(ctx context.Context, userID, personID string) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO friends (user_id, person_id, position)
		SELECT u.id, ?, (SELECT COUNT(*) FROM friends WHERE user_id = u.id)
		FROM users u WHERE u.id = ?`,
		personID, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicateFriend
		}
		return fmt.Errorf("failed to add friend: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read add friend result: %w", err)
	}
	if n == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// isUniqueViolation reports whether the error is a SQLite unique or primary
// key constraint failure. modernc.org/sqlite does not export a sentinel, so
// match on the message the engine emits.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
