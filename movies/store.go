package movies

import "context"

// Store owns persistence and lookup of movie records. Implementations assign
// ids on Create, keep listing in insertion order, and surface every lookup
// miss as an apperror.NotFoundError. Each mutation is atomic per record: an
// update or delete either fully applies or reports a miss, and never
// interleaves with another mutation of the same record.
//
// Two backends exist: MemStore for the in-process list and PGStore for
// PostgreSQL. The backend is chosen at composition time so the rest of the
// application is written once against this interface.
type Store interface {
	// List returns all records in insertion order.
	List(ctx context.Context) ([]Movie, error)
	// GetByID returns the record with the given id.
	GetByID(ctx context.Context, id int) (*Movie, error)
	// ListByCategory returns the records whose category matches exactly, in
	// insertion order. An empty result is returned as an empty slice; the
	// empty-result-as-error policy is applied by the Service, not here.
	ListByCategory(ctx context.Context, category string) ([]Movie, error)
	// Create persists a new record, assigning its id, and returns it.
	Create(ctx context.Context, m Movie) (*Movie, error)
	// Update overwrites all fields except the id of the record with the given
	// id.
	Update(ctx context.Context, id int, m Movie) error
	// Delete removes the record with the given id.
	Delete(ctx context.Context, id int) error
}
