package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return raw
}

func resumeRows(t *testing.T, drafts ...Resume) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "title", "personal_info", "professional_summary",
		"skills", "experience", "education", "projects", "template",
		"accent_color", "is_public", "legacy_blob", "file_url", "file_type",
		"created_at", "updated_at",
	})
	for _, d := range drafts {
		var blob []byte
		if d.LegacyBlob != nil {
			blob = mustJSON(t, d.LegacyBlob)
		}
		rows.AddRow(
			d.ID, d.OwnerID, d.Title,
			mustJSON(t, d.PersonalInfo), d.ProfessionalSummary,
			mustJSON(t, d.Skills), mustJSON(t, d.Experience),
			mustJSON(t, d.Education), mustJSON(t, d.Projects),
			d.Template, d.AccentColor, d.IsPublic,
			blob, d.FileURL, d.FileType,
			d.CreatedAt, d.UpdatedAt,
		)
	}
	return rows
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Second)
	stored := Defaults("owner-1")
	stored.ID = "res-1"
	stored.Title = "Draft"
	stored.Skills = []string{"Go"}
	stored.LegacyBlob = &LegacyFields{ProfessionalSummary: strPtr("legacy")}
	stored.CreatedAt = now
	stored.UpdatedAt = now

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+resumeColumns+` FROM resumes WHERE owner_id = $1 AND id = $2`)).
		WithArgs("owner-1", "res-1").
		WillReturnRows(resumeRows(t, stored))

	repo := &PGRepo{DB: db}
	got, err := repo.GetByID(context.Background(), "owner-1", "res-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Draft" || got.Skills[0] != "Go" {
		t.Fatalf("unexpected draft: %+v", got)
	}
	if got.LegacyBlob == nil || got.LegacyBlob.ProfessionalSummary == nil {
		t.Fatal("legacy blob not round-tripped")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM resumes").
		WithArgs("owner-1", "missing").
		WillReturnRows(resumeRows(t))

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "owner-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO resumes").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	draft := Defaults("owner-1")
	draft.ID = "res-1"
	draft.Title = "Draft"

	repo := &PGRepo{DB: db}
	created, err := repo.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("timestamps not populated from RETURNING")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPGRepoUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("UPDATE resumes SET").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	draft := Defaults("owner-1")
	draft.ID = "missing"

	repo := &PGRepo{DB: db}
	if _, err := repo.Update(context.Background(), draft); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPGRepoDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM resumes").
		WithArgs("owner-1", "res-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM resumes").
		WithArgs("owner-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	if err := repo.Delete(context.Background(), "owner-1", "res-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(context.Background(), "owner-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPGRepoConnectionFailureIsStoreUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM resumes").
		WillReturnError(errors.New("connection refused"))

	repo := &PGRepo{DB: db}
	if _, err := repo.ListByOwner(context.Background(), "owner-1"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("want ErrStoreUnavailable, got %v", err)
	}
}
