package builder

import (
	"strings"

	"resume-builder/internal/resumes"
)

// DefaultTitle names drafts started from scratch.
const DefaultTitle = "My Resume"

// Editor is the working copy behind the multi-step builder. New drafts
// start with one blank entry per section so each step has a form to
// show; drafts loaded from the server keep whatever the server returned,
// including empty sections.
//
// A locally selected profile image is held outside the draft and is
// never part of a save payload; only a stored reference string travels.
type Editor struct {
	draft      resumes.Resume
	localImage []byte
}

// NewEditor starts a fresh draft with defaults and one blank entry per
// section.
func NewEditor() *Editor {
	draft := resumes.Defaults("")
	draft.Title = DefaultTitle
	draft.Experience = []resumes.ExperienceEntry{{}}
	draft.Education = []resumes.EducationEntry{{}}
	draft.Projects = []resumes.ProjectEntry{{}}
	return &Editor{draft: draft}
}

// Draft returns a copy of the current working draft.
func (e *Editor) Draft() resumes.Resume {
	out := e.draft
	out.Skills = append([]string{}, e.draft.Skills...)
	out.Experience = append([]resumes.ExperienceEntry{}, e.draft.Experience...)
	out.Education = append([]resumes.EducationEntry{}, e.draft.Education...)
	out.Projects = append([]resumes.ProjectEntry{}, e.draft.Projects...)
	return out
}

// ID returns the server-assigned draft id, empty until first save.
func (e *Editor) ID() string { return e.draft.ID }

func (e *Editor) setID(id string) { e.draft.ID = id }

// SetTitle replaces the draft title; blank input is ignored.
func (e *Editor) SetTitle(title string) {
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		e.draft.Title = trimmed
	}
}

// UpdatePersonalInfo replaces the contact block. The image reference is
// managed separately and survives the replacement.
func (e *Editor) UpdatePersonalInfo(info resumes.PersonalInfo) {
	info.Image = e.draft.PersonalInfo.Image
	e.draft.PersonalInfo = info
}

// UpdateSummary replaces the professional summary.
func (e *Editor) UpdateSummary(summary string) {
	e.draft.ProfessionalSummary = summary
}

// SetLocalImage stores a locally selected image. It is kept out of the
// draft so it can never leak into a save payload.
func (e *Editor) SetLocalImage(data []byte) {
	e.localImage = append([]byte{}, data...)
}

// LocalImage returns the locally selected image, if any.
func (e *Editor) LocalImage() []byte { return e.localImage }

// SetImageRef records a stored image reference on the contact block.
func (e *Editor) SetImageRef(ref string) {
	e.draft.PersonalInfo.Image = ref
}

// AddSkill appends a trimmed skill. Blank input is ignored; duplicates
// are allowed and insertion order is kept.
func (e *Editor) AddSkill(skill string) {
	trimmed := strings.TrimSpace(skill)
	if trimmed == "" {
		return
	}
	e.draft.Skills = append(e.draft.Skills, trimmed)
}

// RemoveSkill deletes the skill at index i; out-of-range is a no-op.
func (e *Editor) RemoveSkill(i int) {
	if i < 0 || i >= len(e.draft.Skills) {
		return
	}
	e.draft.Skills = append(e.draft.Skills[:i], e.draft.Skills[i+1:]...)
}

// AddExperience appends a blank experience entry.
func (e *Editor) AddExperience() {
	e.draft.Experience = append(e.draft.Experience, resumes.ExperienceEntry{})
}

// UpdateExperience replaces the entry at index i.
func (e *Editor) UpdateExperience(i int, entry resumes.ExperienceEntry) {
	if i < 0 || i >= len(e.draft.Experience) {
		return
	}
	if entry.IsCurrent {
		entry.EndDate = ""
	}
	e.draft.Experience[i] = entry
}

// RemoveExperience deletes the entry at index i. The last remaining
// entry cannot be removed.
func (e *Editor) RemoveExperience(i int) {
	if len(e.draft.Experience) <= 1 || i < 0 || i >= len(e.draft.Experience) {
		return
	}
	e.draft.Experience = append(e.draft.Experience[:i], e.draft.Experience[i+1:]...)
}

// ToggleCurrent flips the is-current flag on the entry at index i,
// clearing the end date in the same step when it turns on.
func (e *Editor) ToggleCurrent(i int) {
	if i < 0 || i >= len(e.draft.Experience) {
		return
	}
	entry := &e.draft.Experience[i]
	entry.IsCurrent = !entry.IsCurrent
	if entry.IsCurrent {
		entry.EndDate = ""
	}
}

// AddEducation appends a blank education entry.
func (e *Editor) AddEducation() {
	e.draft.Education = append(e.draft.Education, resumes.EducationEntry{})
}

// UpdateEducation replaces the entry at index i.
func (e *Editor) UpdateEducation(i int, entry resumes.EducationEntry) {
	if i < 0 || i >= len(e.draft.Education) {
		return
	}
	e.draft.Education[i] = entry
}

// RemoveEducation deletes the entry at index i. The last remaining
// entry cannot be removed.
func (e *Editor) RemoveEducation(i int) {
	if len(e.draft.Education) <= 1 || i < 0 || i >= len(e.draft.Education) {
		return
	}
	e.draft.Education = append(e.draft.Education[:i], e.draft.Education[i+1:]...)
}

// AddProject appends a blank project entry.
func (e *Editor) AddProject() {
	e.draft.Projects = append(e.draft.Projects, resumes.ProjectEntry{})
}

// UpdateProject replaces the entry at index i.
func (e *Editor) UpdateProject(i int, entry resumes.ProjectEntry) {
	if i < 0 || i >= len(e.draft.Projects) {
		return
	}
	e.draft.Projects[i] = entry
}

// RemoveProject deletes the entry at index i. The last remaining entry
// cannot be removed.
func (e *Editor) RemoveProject(i int) {
	if len(e.draft.Projects) <= 1 || i < 0 || i >= len(e.draft.Projects) {
		return
	}
	e.draft.Projects = append(e.draft.Projects[:i], e.draft.Projects[i+1:]...)
}

// SetTemplate selects a template; unknown identifiers are ignored.
func (e *Editor) SetTemplate(template string) {
	if _, ok := resumes.KnownTemplates[template]; !ok {
		return
	}
	e.draft.Template = template
}

// SetAccentColor sets the accent color; blank input restores the default.
func (e *Editor) SetAccentColor(color string) {
	if strings.TrimSpace(color) == "" {
		e.draft.AccentColor = resumes.DefaultAccentColor
		return
	}
	e.draft.AccentColor = color
}

// SetPublic toggles public visibility.
func (e *Editor) SetPublic(public bool) {
	e.draft.IsPublic = public
}
