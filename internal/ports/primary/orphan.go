package primary

import "context"

// OrphanService defines the primary port for resolving orphaned records.
type OrphanService interface {
	// ResolveTable walks the operator through one random orphaned table.
	ResolveTable(ctx context.Context) (*OrphanOutcome, error)

	// ResolveColumn walks the operator through one random orphaned column.
	ResolveColumn(ctx context.Context) (*OrphanOutcome, error)
}

// OrphanOutcome describes a finished orphan session. Empty is true when
// there was nothing to resolve.
type OrphanOutcome struct {
	Empty  bool
	Entity string
	Action string // rename, delete, transfer
	Target string // new name or transfer target
}
