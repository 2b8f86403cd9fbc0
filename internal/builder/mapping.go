package builder

import (
	"strings"

	"resume-builder/internal/resumes"
)

// EditorFromDocument builds a working copy from a server document.
// Field precedence mirrors the server: structured fields win, the legacy
// blob fills gaps, and defaults cover the rest. Unlike NewEditor no
// blank entries are seeded; a loaded empty section stays empty.
func EditorFromDocument(doc resumes.Resume) *Editor {
	draft := resumes.Defaults(doc.OwnerID)
	draft.ID = doc.ID
	draft.CreatedAt = doc.CreatedAt
	draft.UpdatedAt = doc.UpdatedAt
	draft.FileURL = doc.FileURL
	draft.FileType = doc.FileType

	legacy := doc.LegacyBlob

	draft.Title = doc.Title
	if draft.Title == "" {
		draft.Title = DefaultTitle
	}

	draft.PersonalInfo = doc.PersonalInfo
	if isZeroPersonalInfo(doc.PersonalInfo) && legacy != nil && legacy.PersonalInfo != nil {
		draft.PersonalInfo = *legacy.PersonalInfo
	}

	draft.ProfessionalSummary = doc.ProfessionalSummary
	if draft.ProfessionalSummary == "" && legacy != nil && legacy.ProfessionalSummary != nil {
		draft.ProfessionalSummary = *legacy.ProfessionalSummary
	}

	switch {
	case doc.Skills != nil:
		draft.Skills = append([]string{}, doc.Skills...)
	case legacy != nil && legacy.Skills != nil:
		draft.Skills = append([]string{}, (*legacy.Skills)...)
	}

	switch {
	case doc.Experience != nil:
		draft.Experience = append([]resumes.ExperienceEntry{}, doc.Experience...)
	case legacy != nil && legacy.Experience != nil:
		draft.Experience = append([]resumes.ExperienceEntry{}, (*legacy.Experience)...)
	}

	switch {
	case doc.Education != nil:
		draft.Education = append([]resumes.EducationEntry{}, doc.Education...)
	case legacy != nil && legacy.Education != nil:
		draft.Education = append([]resumes.EducationEntry{}, (*legacy.Education)...)
	}

	switch {
	case doc.Projects != nil:
		draft.Projects = append([]resumes.ProjectEntry{}, doc.Projects...)
	case legacy != nil && legacy.Projects != nil:
		draft.Projects = append([]resumes.ProjectEntry{}, (*legacy.Projects)...)
	}

	if doc.Template != "" {
		draft.Template = doc.Template
	} else if legacy != nil && legacy.Template != nil && *legacy.Template != "" {
		draft.Template = *legacy.Template
	}

	if doc.AccentColor != "" {
		draft.AccentColor = doc.AccentColor
	} else if legacy != nil && legacy.AccentColor != nil && *legacy.AccentColor != "" {
		draft.AccentColor = *legacy.AccentColor
	}

	draft.IsPublic = doc.IsPublic
	if !doc.IsPublic && legacy != nil && legacy.IsPublic != nil {
		draft.IsPublic = *legacy.IsPublic
	}

	return &Editor{draft: draft}
}

// SavePayload projects the working copy into a request body. Every
// structured field is sent explicitly so the server replaces sections
// wholesale. A locally held image never appears; only a stored reference
// string is included.
func (e *Editor) SavePayload() resumes.DraftPayload {
	draft := e.Draft()

	info := draft.PersonalInfo
	if strings.TrimSpace(info.Image) == "" {
		info.Image = ""
	}

	title := draft.Title
	summary := draft.ProfessionalSummary
	template := draft.Template
	accent := draft.AccentColor
	public := draft.IsPublic

	return resumes.DraftPayload{
		Title:               &title,
		PersonalInfo:        &info,
		ProfessionalSummary: &summary,
		Skills:              &draft.Skills,
		Experience:          &draft.Experience,
		Education:           &draft.Education,
		Projects:            &draft.Projects,
		Template:            &template,
		AccentColor:         &accent,
		IsPublic:            &public,
	}
}

func isZeroPersonalInfo(p resumes.PersonalInfo) bool {
	return p == resumes.PersonalInfo{}
}
