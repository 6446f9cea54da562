// Package graph exposes the Friendbook API as a GraphQL schema with
// hand-written resolvers (graph-gophers style, no code generation).
package graph

// Schema is the GraphQL contract. The shape is load-bearing: clients bind
// to it, so changes here are API changes.
const Schema = `
	enum YesNo {
		YES
		NO
	}

	type Address {
		street: String!
		city: String!
	}

	type Person {
		name: String!
		age: Int!
		phone: String
		address: Address!
		id: ID!
	}

	type User {
		username: String!
		friends: [Person]!
		id: ID!
	}

	type Token {
		value: String!
	}

	type Query {
		personCount: Int!
		allPersons(phone: YesNo): [Person]!
		findPerson(name: String!): Person
		me: User
	}

	type Mutation {
		addPerson(
			name: String!
			phone: String
			street: String!
			city: String!
		): Person
		editNumber(name: String, phone: String): Person

		createUser(username: String!): User
		login(username: String!, password: String!): Token
		addAsFriend(name: String!): User
	}
`
