package users

import "context"

// Assignment is one SET clause of an update: field Key takes Value.
type Assignment struct {
	Key   string
	Value any
}

// Condition guards an update behind the state a read-modify-write cycle
// observed. When Exists is true the update only applies while Field still
// equals Expected; otherwise it only applies while Field is absent.
type Condition struct {
	Field    string
	Expected []string
	Exists   bool
}

// Repository is the record-store contract the service consumes.
//
// Get returns common.ErrorNotFound for a missing record. Update applies the
// assignments to the record with the given email (creating it if absent, as
// the store does) and returns the new values of the touched attributes; a
// failed Condition surfaces as common.ErrorConflict. Delete returns the
// record as it was before removal.
type Repository interface {
	Get(ctx context.Context, email string) (Record, error)
	GetAll(ctx context.Context) ([]Record, error)
	Put(ctx context.Context, rec Record) (Record, error)
	Update(ctx context.Context, email string, set []Assignment, cond *Condition) (Record, error)
	Delete(ctx context.Context, email string) (Record, error)
}
