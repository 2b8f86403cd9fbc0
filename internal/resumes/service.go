package resumes

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
)

// allowedUploadTypes maps accepted file extensions to the stored file type.
var allowedUploadTypes = map[string]string{
	".pdf":  "pdf",
	".json": "json",
	".doc":  "doc",
	".docx": "docx",
}

// Service implements draft lifecycle operations on top of a Repo and an
// object store for uploaded source files.
type Service struct {
	repo  Repo
	store object.ObjectStore
}

// NewService constructs a Service.
func NewService(repo Repo, store object.ObjectStore) *Service {
	return &Service{repo: repo, store: store}
}

// Create starts a new draft from the payload. Title is mandatory on
// create; everything else falls back to schema defaults.
func (s *Service) Create(ctx context.Context, ownerID string, p DraftPayload) (Resume, error) {
	if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
		return Resume{}, fieldError("title", "Resume title is required")
	}

	base := Defaults(ownerID)
	base.ID = uuid.NewString()
	base.FileType = "json"

	draft, err := Reconcile(base, p)
	if err != nil {
		return Resume{}, err
	}

	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		return Resume{}, err
	}
	metrics.IncResumeCreated()
	return created, nil
}

// Get fetches one draft for its owner.
func (s *Service) Get(ctx context.Context, ownerID, id string) (Resume, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// List returns the owner's drafts, most recently updated first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Resume, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Update reconciles the payload against the stored draft and persists
// the result. The reconciled document is returned in full so callers can
// replace their working copy.
func (s *Service) Update(ctx context.Context, ownerID, id string, p DraftPayload) (Resume, error) {
	existing, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return Resume{}, err
	}

	draft, err := Reconcile(existing, p)
	if err != nil {
		return Resume{}, err
	}

	updated, err := s.repo.Update(ctx, draft)
	if err != nil {
		return Resume{}, err
	}
	metrics.IncResumeUpdated()
	return updated, nil
}

// Delete removes a draft and, when present, its uploaded source file.
// The row is removed first; a failed file cleanup is logged, not surfaced.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	existing, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	metrics.IncResumeDeleted()

	if existing.FileURL != "" && s.store != nil {
		if err := s.store.Delete(ctx, existing.FileURL); err != nil {
			telemetry.Error("resume.file_cleanup_failed", map[string]any{
				"resume_id":   id,
				"storage_key": existing.FileURL,
				"error":       err.Error(),
			})
		}
	}
	return nil
}

// Upload stores a resume source file and creates a draft referencing it.
// Only pdf, json, doc and docx files are accepted. When the stored row
// cannot be written the uploaded object is removed again so no orphan is
// left behind.
func (s *Service) Upload(ctx context.Context, ownerID, fileName, title string, r io.Reader) (Resume, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	fileType, ok := allowedUploadTypes[ext]
	if !ok {
		metrics.IncUploadRejected()
		return Resume{}, fieldError("file", "Invalid file type. Only PDF, JSON, DOC, and DOCX files are allowed")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	}
	if title == "" {
		title = "Uploaded Resume"
	}
	if len(title) > MaxTitleLength {
		title = title[:MaxTitleLength]
	}

	key, _, _, err := s.store.Save(ctx, ownerID, fileName, r)
	if err != nil {
		metrics.IncUploadRejected()
		return Resume{}, err
	}

	draft := Defaults(ownerID)
	draft.ID = uuid.NewString()
	draft.Title = title
	draft.FileURL = key
	draft.FileType = fileType

	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		if cleanupErr := s.store.Delete(ctx, key); cleanupErr != nil {
			telemetry.Error("resume.upload_cleanup_failed", map[string]any{
				"storage_key": key,
				"error":       cleanupErr.Error(),
			})
		}
		metrics.IncUploadRejected()
		return Resume{}, err
	}
	metrics.IncUploadAccepted()
	return created, nil
}
