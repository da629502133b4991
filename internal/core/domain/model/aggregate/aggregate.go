// Package aggregate defines the minimal shape the unit of work needs from a
// domain aggregate: a root entity with a stable string identifier.
package aggregate

// Entity is an object with a stable, unique identity.
type Entity interface {
	ID() string
}

// Aggregate is a cluster of domain objects persisted as one unit. The unit of
// work keys aggregates by Root().ID().
type Aggregate interface {
	Root() Entity
}

// Typed is implemented by aggregates that name their type explicitly for
// storage. Aggregates without it are recorded under their Go type name.
type Typed interface {
	AggregateType() string
}

// Root is an embeddable aggregate root carrying identity and a version that
// grows with every mutation.
type Root struct {
	id      string
	version int
}

func NewRoot(id string) Root {
	return Root{id: id}
}

// RestoreRoot rebuilds a root from persisted state.
func RestoreRoot(id string, version int) Root {
	return Root{id: id, version: version}
}

func (r Root) ID() string {
	return r.id
}

func (r Root) Version() int {
	return r.version
}

func (r *Root) IncrementVersion() {
	r.version++
}
