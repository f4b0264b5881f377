package storage

// Filters are equality constraints on named columns, e.g.
// Filters{"user_id": 42}. An empty or nil Filters matches every row.
type Filters map[string]any

// Repository is the contract every entity repository satisfies: idempotent
// schema creation, bulk upsert under a per-entity conflict policy, and
// filtered reads that reconstruct typed entities.
type Repository[T any] interface {
	CreateTable() error
	Insert(entities []T) error
	Get(f Filters) ([]T, error)
	GetOne(f Filters) (*T, error)
}
