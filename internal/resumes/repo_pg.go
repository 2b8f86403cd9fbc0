package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Structured sections and the
// legacy blob are stored as JSONB; section arrays are replaced whole on
// update, matching the reconciliation contract.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, owner_id, title, personal_info, professional_summary, skills, experience, education, projects, template, accent_color, is_public, legacy_blob, file_url, file_type, created_at, updated_at`

// Create inserts a new draft. Timestamps come from the database.
func (r *PGRepo) Create(ctx context.Context, draft Resume) (Resume, error) {
	const query = `
INSERT INTO resumes (
    id, owner_id, title, personal_info, professional_summary, skills,
    experience, education, projects, template, accent_color, is_public,
    legacy_blob, file_url, file_type
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING created_at, updated_at`

	cols, err := marshalColumns(draft)
	if err != nil {
		return Resume{}, err
	}

	err = r.DB.QueryRowContext(
		ctx,
		query,
		draft.ID,
		draft.OwnerID,
		draft.Title,
		cols.personalInfo,
		draft.ProfessionalSummary,
		cols.skills,
		cols.experience,
		cols.education,
		cols.projects,
		draft.Template,
		draft.AccentColor,
		draft.IsPublic,
		cols.legacyBlob,
		draft.FileURL,
		draft.FileType,
	).Scan(&draft.CreatedAt, &draft.UpdatedAt)
	if err != nil {
		return Resume{}, storeErr("insert resume", err)
	}
	return draft, nil
}

// GetByID fetches one draft scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, ownerID, id string) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE owner_id = $1 AND id = $2 LIMIT 1`
	draft, err := scanResume(r.DB.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, storeErr("select resume", err)
	}
	return draft, nil
}

// ListByOwner lists an owner's drafts, most recently updated first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE owner_id = $1 ORDER BY updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, storeErr("list resumes", err)
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		draft, err := scanResume(rows)
		if err != nil {
			return nil, storeErr("scan resume", err)
		}
		out = append(out, draft)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list resumes", err)
	}
	return out, nil
}

// Update replaces the stored draft and bumps updated_at.
func (r *PGRepo) Update(ctx context.Context, draft Resume) (Resume, error) {
	const query = `
UPDATE resumes SET
    title = $3,
    personal_info = $4,
    professional_summary = $5,
    skills = $6,
    experience = $7,
    education = $8,
    projects = $9,
    template = $10,
    accent_color = $11,
    is_public = $12,
    legacy_blob = $13,
    file_url = $14,
    file_type = $15,
    updated_at = now()
WHERE owner_id = $1 AND id = $2
RETURNING created_at, updated_at`

	cols, err := marshalColumns(draft)
	if err != nil {
		return Resume{}, err
	}

	err = r.DB.QueryRowContext(
		ctx,
		query,
		draft.OwnerID,
		draft.ID,
		draft.Title,
		cols.personalInfo,
		draft.ProfessionalSummary,
		cols.skills,
		cols.experience,
		cols.education,
		cols.projects,
		draft.Template,
		draft.AccentColor,
		draft.IsPublic,
		cols.legacyBlob,
		draft.FileURL,
		draft.FileType,
	).Scan(&draft.CreatedAt, &draft.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, storeErr("update resume", err)
	}
	return draft, nil
}

// Delete removes one draft scoped to its owner.
func (r *PGRepo) Delete(ctx context.Context, ownerID, id string) error {
	const query = `DELETE FROM resumes WHERE owner_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return storeErr("delete resume", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete resume", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type jsonColumns struct {
	personalInfo []byte
	skills       []byte
	experience   []byte
	education    []byte
	projects     []byte
	legacyBlob   any
}

func marshalColumns(draft Resume) (jsonColumns, error) {
	var cols jsonColumns
	var err error

	if cols.personalInfo, err = json.Marshal(draft.PersonalInfo); err != nil {
		return cols, fmt.Errorf("marshal personal_info: %w", err)
	}
	if cols.skills, err = json.Marshal(draft.Skills); err != nil {
		return cols, fmt.Errorf("marshal skills: %w", err)
	}
	if cols.experience, err = json.Marshal(draft.Experience); err != nil {
		return cols, fmt.Errorf("marshal experience: %w", err)
	}
	if cols.education, err = json.Marshal(draft.Education); err != nil {
		return cols, fmt.Errorf("marshal education: %w", err)
	}
	if cols.projects, err = json.Marshal(draft.Projects); err != nil {
		return cols, fmt.Errorf("marshal projects: %w", err)
	}
	if draft.LegacyBlob != nil {
		raw, err := json.Marshal(draft.LegacyBlob)
		if err != nil {
			return cols, fmt.Errorf("marshal legacy blob: %w", err)
		}
		cols.legacyBlob = raw
	}
	return cols, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var draft Resume
	var personalInfo, skills, experience, education, projects []byte
	var legacyBlob []byte
	var fileURL, fileType sql.NullString

	err := row.Scan(
		&draft.ID,
		&draft.OwnerID,
		&draft.Title,
		&personalInfo,
		&draft.ProfessionalSummary,
		&skills,
		&experience,
		&education,
		&projects,
		&draft.Template,
		&draft.AccentColor,
		&draft.IsPublic,
		&legacyBlob,
		&fileURL,
		&fileType,
		&draft.CreatedAt,
		&draft.UpdatedAt,
	)
	if err != nil {
		return Resume{}, err
	}

	if err := json.Unmarshal(personalInfo, &draft.PersonalInfo); err != nil {
		return Resume{}, fmt.Errorf("unmarshal personal_info: %w", err)
	}
	if err := json.Unmarshal(skills, &draft.Skills); err != nil {
		return Resume{}, fmt.Errorf("unmarshal skills: %w", err)
	}
	if err := json.Unmarshal(experience, &draft.Experience); err != nil {
		return Resume{}, fmt.Errorf("unmarshal experience: %w", err)
	}
	if err := json.Unmarshal(education, &draft.Education); err != nil {
		return Resume{}, fmt.Errorf("unmarshal education: %w", err)
	}
	if err := json.Unmarshal(projects, &draft.Projects); err != nil {
		return Resume{}, fmt.Errorf("unmarshal projects: %w", err)
	}
	if len(legacyBlob) > 0 {
		var blob LegacyFields
		if err := json.Unmarshal(legacyBlob, &blob); err != nil {
			return Resume{}, fmt.Errorf("unmarshal legacy blob: %w", err)
		}
		draft.LegacyBlob = &blob
	}
	if fileURL.Valid {
		draft.FileURL = fileURL.String
	}
	if fileType.Valid {
		draft.FileType = fileType.String
	}
	return draft, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}
