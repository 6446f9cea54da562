package graph

import (
	graphql "github.com/graph-gophers/graphql-go"

	"github.com/jonludena/friendbook/internal/models"
)

type userResolver struct {
	u *models.User
}

func (r *userResolver) ID() graphql.ID   { return graphql.ID(r.u.ID) }
func (r *userResolver) Username() string { return r.u.Username }

func (r *userResolver) Friends() []*personResolver {
	friends := make([]*personResolver, len(r.u.Friends))
	for i := range r.u.Friends {
		friends[i] = &personResolver{p: &r.u.Friends[i]}
	}
	return friends
}

type tokenResolver struct {
	value string
}

func (r *tokenResolver) Value() string { return r.value }
