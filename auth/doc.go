// Package auth implements the permission predicates the queue and API
// gateway consume (spec.md §6's authentication collaborator contract).
//
// Token issuance, credential hashing and the user store itself are
// explicitly out of scope (spec.md §1 Non-goals): this package only
// verifies a bearer token and exposes the permission checks every
// handler in package api calls before acting.
package auth
