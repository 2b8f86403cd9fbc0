package resumes

import "time"

// Known template identifiers.
const (
	TemplateClassic      = "classic"
	TemplateMinimal      = "minimal"
	TemplateModern       = "modern"
	TemplateMinimalImage = "minimal-image"
	TemplateProfessional = "professional"
)

const (
	DefaultTemplate    = TemplateClassic
	DefaultAccentColor = "#3B82F6"

	// MaxTitleLength bounds the display title.
	MaxTitleLength = 100
)

// KnownTemplates is the set of valid template identifiers.
var KnownTemplates = map[string]struct{}{
	TemplateClassic:      {},
	TemplateMinimal:      {},
	TemplateModern:       {},
	TemplateMinimalImage: {},
	TemplateProfessional: {},
}

// PersonalInfo holds the contact block of a draft. Image is a stored
// reference string; client-local binaries are never persisted.
type PersonalInfo struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Location   string `json:"location"`
	Profession string `json:"profession"`
	LinkedIn   string `json:"linkedin"`
	Website    string `json:"website"`
	Image      string `json:"image"`
}

// ExperienceEntry is one position in the experience section.
// Dates are year-month strings (YYYY-MM). IsCurrent true implies an
// empty EndDate; reconciliation enforces this on every write.
type ExperienceEntry struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsCurrent   bool   `json:"is_current"`
	Description string `json:"description"`
}

// EducationEntry is one degree in the education section.
type EducationEntry struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationDate string `json:"graduation_date"`
	GPA            string `json:"gpa"`
}

// ProjectEntry is one project in the projects section.
type ProjectEntry struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// LegacyFields is the unstructured bag written by pre-schema clients.
// It mirrors the structured fields and is retained only for backward
// compatibility; structured fields always win over it.
type LegacyFields struct {
	PersonalInfo        *PersonalInfo      `json:"personal_info,omitempty"`
	ProfessionalSummary *string            `json:"professional_summary,omitempty"`
	Skills              *[]string          `json:"skills,omitempty"`
	Experience          *[]ExperienceEntry `json:"experience,omitempty"`
	Education           *[]EducationEntry  `json:"education,omitempty"`
	Projects            *[]ProjectEntry    `json:"project,omitempty"`
	Template            *string            `json:"template,omitempty"`
	AccentColor         *string            `json:"accent_color,omitempty"`
	IsPublic            *bool              `json:"public,omitempty"`
}

// Resume is one draft owned by a user.
type Resume struct {
	ID                  string            `json:"id"`
	OwnerID             string            `json:"userId"`
	Title               string            `json:"title"`
	PersonalInfo        PersonalInfo      `json:"personal_info"`
	ProfessionalSummary string            `json:"professional_summary"`
	Skills              []string          `json:"skills"`
	Experience          []ExperienceEntry `json:"experience"`
	Education           []EducationEntry  `json:"education"`
	Projects            []ProjectEntry    `json:"project"`
	Template            string            `json:"template"`
	AccentColor         string            `json:"accent_color"`
	IsPublic            bool              `json:"public"`
	LegacyBlob          *LegacyFields     `json:"resumeData,omitempty"`
	FileURL             string            `json:"fileUrl,omitempty"`
	FileType            string            `json:"fileType,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// Defaults returns an empty draft with schema defaults applied.
func Defaults(ownerID string) Resume {
	return Resume{
		OwnerID:     ownerID,
		Skills:      []string{},
		Experience:  []ExperienceEntry{},
		Education:   []EducationEntry{},
		Projects:    []ProjectEntry{},
		Template:    DefaultTemplate,
		AccentColor: DefaultAccentColor,
	}
}
