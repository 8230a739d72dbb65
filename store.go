package tianshu

// Store composes the full Task Store contract (spec.md §4.1): the union
// of Submitter, Leaser, Observer and Maintainer. storage/sqlite.Store
// implements it; the API gateway and worker runtime depend on the
// narrower interfaces they actually use, wired through Store at
// construction time.
type Store interface {
	Submitter
	Leaser
	Observer
	Maintainer
}
