// Package api implements the Tianshu REST gateway: task submission,
// status and result retrieval, queue administration, and engine
// discovery, all gated by the permission predicates package auth
// resolves from a bearer token (spec.md §4.4, §6).
package api
