package graph

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jonludena/friendbook/internal/auth"
	"github.com/jonludena/friendbook/internal/middleware"
	"github.com/jonludena/friendbook/internal/models"
	"github.com/jonludena/friendbook/internal/storage"
)

// Resolver is the root resolver for both queries and mutations.
type Resolver struct {
	store storage.Store
	jwt   *auth.JWTManager
	authn auth.Authenticator
}

// NewResolver creates the root resolver with its collaborators injected.
func NewResolver(store storage.Store, jwt *auth.JWTManager, authn auth.Authenticator) *Resolver {
	return &Resolver{store: store, jwt: jwt, authn: authn}
}

// PersonCount returns the number of person records.
func (r *Resolver) PersonCount(ctx context.Context) (int32, error) {
	return r.store.CountPersons(ctx)
}

// AllPersons lists persons, optionally filtered by whether a phone number
// is on record.
func (r *Resolver) AllPersons(ctx context.Context, args struct{ Phone *string }) ([]*personResolver, error) {
	filter := storage.PhoneAny
	if args.Phone != nil {
		if *args.Phone == "YES" {
			filter = storage.PhoneSet
		} else {
			filter = storage.PhoneUnset
		}
	}

	persons, err := r.store.ListPersons(ctx, filter)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*personResolver, len(persons))
	for i := range persons {
		resolvers[i] = &personResolver{p: &persons[i]}
	}
	return resolvers, nil
}

// FindPerson returns the first person with the given name, or null.
func (r *Resolver) FindPerson(ctx context.Context, args struct{ Name string }) (*personResolver, error) {
	person, err := r.store.GetPersonByName(ctx, args.Name)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, nil
	}
	return &personResolver{p: person}, nil
}

// Me returns the authenticated user from the request context verbatim, or
// null for anonymous callers. No fetch happens here.
func (r *Resolver) Me(ctx context.Context) *userResolver {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		return nil
	}
	return &userResolver{u: user}
}

// AddPerson creates a person and appends it to the caller's friend list.
// A brand-new person cannot already be a friend, so no dedup check runs.
func (r *Resolver) AddPerson(ctx context.Context, args struct {
	Name   string
	Phone  *string
	Street string
	City   string
}) (*personResolver, error) {
	currentUser := middleware.CurrentUser(ctx)
	if currentUser == nil {
		return nil, errNotAuthorized()
	}

	person := &models.Person{
		Name:   args.Name,
		Phone:  args.Phone,
		Street: args.Street,
		City:   args.City,
	}

	if err := r.store.CreatePerson(ctx, person); err != nil {
		return nil, r.wrapValidation(err, map[string]interface{}{
			"name":   args.Name,
			"phone":  args.Phone,
			"street": args.Street,
			"city":   args.City,
		})
	}

	// No compensating delete if the append fails: the person record stays,
	// reachable through queries but in nobody's friend list.
	if err := r.store.AddFriend(ctx, currentUser.ID, person.ID); err != nil {
		slog.Error("addPerson: person created but friend append failed",
			"person_id", person.ID,
			"user_id", currentUser.ID,
			"error", err,
		)
		return nil, err
	}

	slog.Info("person created", "person_id", person.ID, "user_id", currentUser.ID)
	return &personResolver{p: person}, nil
}

// EditNumber sets (or clears) a person's phone number. Any caller may edit
// any person; an unknown name is a silent null result, not an error.
func (r *Resolver) EditNumber(ctx context.Context, args struct {
	Name  *string
	Phone *string
}) (*personResolver, error) {
	if args.Name == nil {
		return nil, nil
	}

	person, err := r.store.GetPersonByName(ctx, *args.Name)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, nil
	}

	person.Phone = args.Phone
	if err := r.store.UpdatePerson(ctx, person); err != nil {
		return nil, r.wrapValidation(err, map[string]interface{}{
			"name":  args.Name,
			"phone": args.Phone,
		})
	}

	return &personResolver{p: person}, nil
}

// CreateUser registers a new account with an empty friend list. Account
// creation is public.
func (r *Resolver) CreateUser(ctx context.Context, args struct{ Username string }) (*userResolver, error) {
	user := &models.User{Username: args.Username}

	if err := r.store.CreateUser(ctx, user); err != nil {
		return nil, r.wrapValidation(err, map[string]interface{}{
			"username": args.Username,
		})
	}

	slog.Info("user created", "user_id", user.ID, "username", user.Username)
	return &userResolver{u: user}, nil
}

// Login verifies credentials and issues a signed bearer token carrying the
// username and user ID. Failures are deliberately generic.
func (r *Resolver) Login(ctx context.Context, args struct{ Username, Password string }) (*tokenResolver, error) {
	user, err := r.authn.Authenticate(ctx, args.Username, args.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, &inputError{message: "Wrong credentials"}
		}
		return nil, err
	}

	token, err := r.jwt.Generate(user)
	if err != nil {
		return nil, err
	}

	slog.Info("login", "user_id", user.ID, "username", user.Username)
	return &tokenResolver{value: token}, nil
}

// AddAsFriend appends an existing person to the caller's friend list.
// Adding the same person twice is a conflict, never a silent no-op.
func (r *Resolver) AddAsFriend(ctx context.Context, args struct{ Name string }) (*userResolver, error) {
	currentUser := middleware.CurrentUser(ctx)
	if currentUser == nil {
		return nil, errNotAuthorized()
	}

	person, err := r.store.GetPersonByName(ctx, args.Name)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, &inputError{
			message:     "person not found",
			invalidArgs: map[string]interface{}{"name": args.Name},
		}
	}

	if currentUser.HasFriend(person.ID) {
		return nil, &conflictError{message: "already a friend"}
	}

	err = r.store.AddFriend(ctx, currentUser.ID, person.ID)
	if errors.Is(err, storage.ErrDuplicateFriend) {
		// Raced with a concurrent append of the same person; the friends
		// table's primary key decided it.
		return nil, &conflictError{message: "already a friend"}
	}
	if err != nil {
		return nil, err
	}

	// Refetch so the returned user reflects the append with friends
	// dereferenced.
	updated, err := r.store.GetUserByID(ctx, currentUser.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, storage.ErrUserNotFound
	}

	slog.Info("friend added", "user_id", updated.ID, "person_id", person.ID)
	return &userResolver{u: updated}, nil
}

// wrapValidation converts a store validation failure into an input error
// carrying the submitted arguments; anything else passes through.
func (r *Resolver) wrapValidation(err error, invalidArgs map[string]interface{}) error {
	var verr *storage.ValidationError
	if errors.As(err, &verr) {
		return &inputError{message: verr.Error(), invalidArgs: invalidArgs}
	}
	return err
}
