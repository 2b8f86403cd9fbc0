package resumes

import "context"

// Repo defines persistence operations for resume drafts. Every operation
// is scoped to an owner; drafts belonging to other owners behave as if
// they do not exist.
type Repo interface {
	Create(ctx context.Context, r Resume) (Resume, error)
	GetByID(ctx context.Context, ownerID, id string) (Resume, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Resume, error)
	Update(ctx context.Context, r Resume) (Resume, error)
	Delete(ctx context.Context, ownerID, id string) error
}
