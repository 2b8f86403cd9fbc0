package builder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/resumes"
)

// serviceAPI runs the builder against the real draft service so saves go
// through the same reconciliation as production requests.
type serviceAPI struct {
	svc     *resumes.Service
	ownerID string
	fail    error
}

func (a *serviceAPI) Create(ctx context.Context, payload resumes.DraftPayload) (resumes.Resume, error) {
	if a.fail != nil {
		return resumes.Resume{}, a.fail
	}
	return a.svc.Create(ctx, a.ownerID, payload)
}

func (a *serviceAPI) Update(ctx context.Context, id string, payload resumes.DraftPayload) (resumes.Resume, error) {
	if a.fail != nil {
		return resumes.Resume{}, a.fail
	}
	return a.svc.Update(ctx, a.ownerID, id, payload)
}

func (a *serviceAPI) Get(ctx context.Context, id string) (resumes.Resume, error) {
	return a.svc.Get(ctx, a.ownerID, id)
}

func newServiceAPI() *serviceAPI {
	return &serviceAPI{
		svc:     resumes.NewService(resumes.NewMemoryRepo(), nil),
		ownerID: "user-1",
	}
}

func TestSessionFirstSaveCapturesID(t *testing.T) {
	api := newServiceAPI()
	s := NewSession(api)
	ctx := context.Background()

	created, err := s.Save(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, created.ID, s.Editor().ID())

	// Second save updates the same draft instead of creating another.
	s.Editor().UpdateSummary("revised")
	updated, err := s.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	drafts, err := api.svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, drafts, 1)
}

func TestSessionFailedSavePreservesEdits(t *testing.T) {
	api := newServiceAPI()
	s := NewSession(api)
	ctx := context.Background()

	s.Editor().UpdateSummary("unsaved work")
	api.fail = errors.New("server down")

	_, err := s.Save(ctx)
	require.Error(t, err)
	assert.Empty(t, s.Editor().ID())
	assert.Equal(t, "unsaved work", s.Editor().Draft().ProfessionalSummary)

	// Retry after recovery succeeds with the preserved edits.
	api.fail = nil
	created, err := s.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, "unsaved work", created.ProfessionalSummary)
}

func TestSessionRoundTripThroughReconciliation(t *testing.T) {
	api := newServiceAPI()
	s := NewSession(api)
	ctx := context.Background()

	editor := s.Editor()
	editor.SetTitle("Backend Resume")
	editor.UpdatePersonalInfo(resumes.PersonalInfo{FullName: "Jordan Doe", Email: "jordan@example.com"})
	editor.UpdateSummary("Experienced backend engineer")
	editor.AddSkill("Go")
	editor.UpdateExperience(0, resumes.ExperienceEntry{
		Company:   "Acme",
		Position:  "Engineer",
		StartDate: "2022-01",
		EndDate:   "2099-12",
		IsCurrent: true,
	})
	editor.SetTemplate(resumes.TemplateModern)
	editor.SetPublic(true)

	saved, err := s.Save(ctx)
	require.NoError(t, err)

	loaded, err := LoadSession(ctx, api, saved.ID)
	require.NoError(t, err)
	draft := loaded.Editor().Draft()

	assert.Equal(t, "Backend Resume", draft.Title)
	assert.Equal(t, "Jordan Doe", draft.PersonalInfo.FullName)
	assert.Equal(t, []string{"Go"}, draft.Skills)
	assert.Equal(t, resumes.TemplateModern, draft.Template)
	assert.True(t, draft.IsPublic)

	// The server cleared the end date on the current position.
	require.Len(t, draft.Experience, 1)
	assert.True(t, draft.Experience[0].IsCurrent)
	assert.Empty(t, draft.Experience[0].EndDate)
}

func TestSessionSavedEmptySectionsStayEmptyOnReload(t *testing.T) {
	api := newServiceAPI()
	s := NewSession(api)
	ctx := context.Background()

	editor := s.Editor()
	editor.SetTitle("Sparse")
	// Clear the seeded entries down to blanks and save; the stored
	// entries round-trip as-is.
	saved, err := s.Save(ctx)
	require.NoError(t, err)

	loaded, err := LoadSession(ctx, api, saved.ID)
	require.NoError(t, err)

	draft := loaded.Editor().Draft()
	// The blank seeded entries were saved; reload shows exactly them,
	// nothing extra is seeded.
	assert.Len(t, draft.Experience, 1)
	assert.Len(t, draft.Education, 1)
	assert.Len(t, draft.Projects, 1)
}

func TestSessionReloadDiscardsUnsavedEdits(t *testing.T) {
	api := newServiceAPI()
	s := NewSession(api)
	ctx := context.Background()

	s.Editor().UpdateSummary("saved")
	_, err := s.Save(ctx)
	require.NoError(t, err)

	s.Editor().UpdateSummary("unsaved")
	require.NoError(t, s.Reload(ctx))
	assert.Equal(t, "saved", s.Editor().Draft().ProfessionalSummary)
}
