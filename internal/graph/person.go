package graph

import (
	graphql "github.com/graph-gophers/graphql-go"

	"github.com/jonludena/friendbook/internal/models"
)

type personResolver struct {
	p *models.Person
}

func (r *personResolver) ID() graphql.ID { return graphql.ID(r.p.ID) }
func (r *personResolver) Name() string   { return r.p.Name }
func (r *personResolver) Age() int32     { return r.p.Age }
func (r *personResolver) Phone() *string { return r.p.Phone }

// Address is a read-time projection of the street and city columns; it is
// never stored as a separate record.
func (r *personResolver) Address() *addressResolver {
	return &addressResolver{street: r.p.Street, city: r.p.City}
}

type addressResolver struct {
	street string
	city   string
}

func (r *addressResolver) Street() string { return r.street }
func (r *addressResolver) City() string   { return r.city }
