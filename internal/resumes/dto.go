package resumes

import "time"

// DraftPayload is the request body for create and update. Every field is
// optional; nil means "not supplied" and leaves the stored value alone.
// Collection fields replace wholesale when present, they are never merged
// entry-by-entry.
type DraftPayload struct {
	Title               *string            `json:"title"`
	PersonalInfo        *PersonalInfo      `json:"personal_info"`
	ProfessionalSummary *string            `json:"professional_summary"`
	Skills              *[]string          `json:"skills"`
	Experience          *[]ExperienceEntry `json:"experience"`
	Education           *[]EducationEntry  `json:"education"`
	Projects            *[]ProjectEntry    `json:"project"`
	Template            *string            `json:"template"`
	AccentColor         *string            `json:"accent_color"`
	IsPublic            *bool              `json:"public"`
	LegacyBlob          *LegacyFields      `json:"resumeData"`
}

// SummaryResponse is the list-view projection of a draft. Heavy content
// fields are excluded.
type SummaryResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	IsPublic  bool      `json:"public"`
	FileType  string    `json:"fileType,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toSummary(r Resume) SummaryResponse {
	return SummaryResponse{
		ID:        r.ID,
		Title:     r.Title,
		Template:  r.Template,
		IsPublic:  r.IsPublic,
		FileType:  r.FileType,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
