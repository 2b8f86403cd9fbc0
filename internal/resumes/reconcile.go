package resumes

import (
	"fmt"
	"strings"
)

// Reconcile resolves an incoming payload against the stored draft and
// returns the document to persist. Precedence per top-level field:
// structured payload field, else the equivalent legacy-blob field, else
// the existing stored value. Collection fields replace wholesale.
//
// Experience entries with IsCurrent set are stored with EndDate cleared
// regardless of what the payload carried.
func Reconcile(existing Resume, p DraftPayload) (Resume, error) {
	out := existing
	legacy := p.LegacyBlob

	if p.Title != nil {
		if trimmed := strings.TrimSpace(*p.Title); trimmed != "" {
			out.Title = trimmed
		}
	}
	if len(out.Title) > MaxTitleLength {
		return Resume{}, fieldError("title", fmt.Sprintf("Title cannot exceed %d characters", MaxTitleLength))
	}

	switch {
	case p.PersonalInfo != nil:
		out.PersonalInfo = *p.PersonalInfo
	case legacy != nil && legacy.PersonalInfo != nil:
		out.PersonalInfo = *legacy.PersonalInfo
	}

	switch {
	case p.ProfessionalSummary != nil:
		out.ProfessionalSummary = *p.ProfessionalSummary
	case legacy != nil && legacy.ProfessionalSummary != nil:
		out.ProfessionalSummary = *legacy.ProfessionalSummary
	}

	switch {
	case p.Skills != nil:
		out.Skills = append([]string{}, (*p.Skills)...)
	case legacy != nil && legacy.Skills != nil:
		out.Skills = append([]string{}, (*legacy.Skills)...)
	}

	switch {
	case p.Experience != nil:
		out.Experience = append([]ExperienceEntry{}, (*p.Experience)...)
	case legacy != nil && legacy.Experience != nil:
		out.Experience = append([]ExperienceEntry{}, (*legacy.Experience)...)
	}

	switch {
	case p.Education != nil:
		out.Education = append([]EducationEntry{}, (*p.Education)...)
	case legacy != nil && legacy.Education != nil:
		out.Education = append([]EducationEntry{}, (*legacy.Education)...)
	}

	switch {
	case p.Projects != nil:
		out.Projects = append([]ProjectEntry{}, (*p.Projects)...)
	case legacy != nil && legacy.Projects != nil:
		out.Projects = append([]ProjectEntry{}, (*legacy.Projects)...)
	}

	switch {
	case p.Template != nil && *p.Template != "":
		out.Template = *p.Template
	case legacy != nil && legacy.Template != nil && *legacy.Template != "":
		out.Template = *legacy.Template
	}
	if out.Template == "" {
		out.Template = DefaultTemplate
	}
	if _, ok := KnownTemplates[out.Template]; !ok {
		return Resume{}, fieldError("template", fmt.Sprintf("Unknown template %q", out.Template))
	}

	switch {
	case p.AccentColor != nil && *p.AccentColor != "":
		out.AccentColor = *p.AccentColor
	case legacy != nil && legacy.AccentColor != nil && *legacy.AccentColor != "":
		out.AccentColor = *legacy.AccentColor
	}
	if out.AccentColor == "" {
		out.AccentColor = DefaultAccentColor
	}

	switch {
	case p.IsPublic != nil:
		out.IsPublic = *p.IsPublic
	case legacy != nil && legacy.IsPublic != nil:
		out.IsPublic = *legacy.IsPublic
	}

	if p.LegacyBlob != nil {
		out.LegacyBlob = p.LegacyBlob
	}

	normalize(&out)
	return out, nil
}

// normalize enforces the stored-shape invariants: non-nil sections and
// no entry with both IsCurrent and a non-empty EndDate.
func normalize(r *Resume) {
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Experience == nil {
		r.Experience = []ExperienceEntry{}
	}
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
	if r.Projects == nil {
		r.Projects = []ProjectEntry{}
	}
	for i := range r.Experience {
		if r.Experience[i].IsCurrent {
			r.Experience[i].EndDate = ""
		}
	}
}
