package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for dev mode and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	drafts map[string]Resume
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{drafts: make(map[string]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, draft Resume) (Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	draft.CreatedAt = now
	draft.UpdatedAt = now
	r.drafts[draft.ID] = clone(draft)
	return clone(draft), nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, ownerID, id string) (Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	draft, ok := r.drafts[id]
	if !ok || draft.OwnerID != ownerID {
		return Resume{}, ErrNotFound
	}
	return clone(draft), nil
}

func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Resume
	for _, draft := range r.drafts {
		if draft.OwnerID == ownerID {
			out = append(out, clone(draft))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, draft Resume) (Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.drafts[draft.ID]
	if !ok || existing.OwnerID != draft.OwnerID {
		return Resume{}, ErrNotFound
	}

	draft.CreatedAt = existing.CreatedAt
	draft.UpdatedAt = time.Now().UTC()
	r.drafts[draft.ID] = clone(draft)
	return clone(draft), nil
}

func (r *MemoryRepo) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	draft, ok := r.drafts[id]
	if !ok || draft.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(r.drafts, id)
	return nil
}

func clone(r Resume) Resume {
	out := r
	out.Skills = append([]string{}, r.Skills...)
	out.Experience = append([]ExperienceEntry{}, r.Experience...)
	out.Education = append([]EducationEntry{}, r.Education...)
	out.Projects = append([]ProjectEntry{}, r.Projects...)
	if r.LegacyBlob != nil {
		blob := *r.LegacyBlob
		out.LegacyBlob = &blob
	}
	return out
}
