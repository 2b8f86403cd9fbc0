package builder

import (
	"context"

	"resume-builder/internal/resumes"
)

// ResumeAPI is the server surface the builder saves through.
type ResumeAPI interface {
	Create(ctx context.Context, payload resumes.DraftPayload) (resumes.Resume, error)
	Update(ctx context.Context, id string, payload resumes.DraftPayload) (resumes.Resume, error)
	Get(ctx context.Context, id string) (resumes.Resume, error)
}

// Session ties an Editor to its server-side draft. The first save
// creates the draft and captures the assigned id; later saves update it.
//
// Saves and loads are not fenced against each other: a save still in
// flight when a load completes can land after it, and the editor keeps
// whichever state arrived last.
type Session struct {
	api    ResumeAPI
	editor *Editor
}

// NewSession starts a session around a fresh draft.
func NewSession(api ResumeAPI) *Session {
	return &Session{api: api, editor: NewEditor()}
}

// LoadSession fetches an existing draft and builds a session around it.
func LoadSession(ctx context.Context, api ResumeAPI, id string) (*Session, error) {
	doc, err := api.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Session{api: api, editor: EditorFromDocument(doc)}, nil
}

// Editor exposes the working copy for edits.
func (s *Session) Editor() *Editor { return s.editor }

// Save pushes the working copy to the server. An unsaved draft is
// created and its id captured for subsequent saves. On failure the
// working copy is left untouched so edits survive a retry.
func (s *Session) Save(ctx context.Context) (resumes.Resume, error) {
	payload := s.editor.SavePayload()

	if s.editor.ID() == "" {
		created, err := s.api.Create(ctx, payload)
		if err != nil {
			return resumes.Resume{}, err
		}
		s.editor.setID(created.ID)
		return created, nil
	}

	updated, err := s.api.Update(ctx, s.editor.ID(), payload)
	if err != nil {
		return resumes.Resume{}, err
	}
	return updated, nil
}

// Reload replaces the working copy with the server state. Unsaved edits
// are discarded.
func (s *Session) Reload(ctx context.Context) error {
	if s.editor.ID() == "" {
		return nil
	}
	doc, err := s.api.Get(ctx, s.editor.ID())
	if err != nil {
		return err
	}
	s.editor = EditorFromDocument(doc)
	return nil
}
