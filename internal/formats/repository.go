package formats

import "context"

// Repository persists records keyed by id. Put is an upsert.
type Repository interface {
	GetAll(ctx context.Context) ([]Record, error)
	Put(ctx context.Context, record Record) error
}

// Deleter is implemented by repositories that can remove records.
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

// Locker is implemented by repositories shared between processes. Bootstrap
// holds the lock while seeding and reconciling.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}
