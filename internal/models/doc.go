// Package models defines the core domain models for Friendbook.
//
// # Models
//
//   - Person: an address-book contact. Anyone may read persons; creating one
//     requires an authenticated user, who adopts the new person as a friend.
//   - User: a registered account that accumulates persons as friends.
//
// # Design Principles
//
//  1. **Value snapshots**: stores return copies; callers mutate a copy and
//     write it back through an explicit update operation.
//  2. **Avoid circular references**: User.Friends embeds Person values
//     resolved at read time; persistence stores only identifiers.
//  3. **Optional means nil**: Person.Phone is a pointer so an absent phone
//     stays distinguishable from an empty string.
package models
