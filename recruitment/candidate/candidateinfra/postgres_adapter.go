package candidateinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/recruitment/candidate"
	"github.com/jmoiron/sqlx"
)

type PostgresCandidateRepository struct {
	db *sqlx.DB
}

func NewPostgresCandidateRepository(db *sqlx.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

var _ candidate.Repository = (*PostgresCandidateRepository)(nil)

var resumeColumns = []string{
	"resume_url", "resume_path", "resume_file_name", "resume_content_type", "resume_text",
}

// Column lists follow the form schema so a new field only needs a migration
var (
	writableColumns = buildWritableColumns()
	selectColumns   = "id, user_id, " + strings.Join(writableColumns, ", ") + ", created_at, updated_at"

	insertQuery = buildInsertQuery()
	updateQuery = buildUpdateQuery()
)

func buildWritableColumns() []string {
	cols := make([]string, 0, len(candidate.Schema)+len(resumeColumns))
	for _, spec := range candidate.TextFields() {
		cols = append(cols, string(spec.Name))
	}
	return append(cols, resumeColumns...)
}

func buildInsertQuery() string {
	cols := append([]string{"id", "user_id"}, writableColumns...)
	cols = append(cols, "created_at", "updated_at")
	params := make([]string, len(cols))
	for i, col := range cols {
		params[i] = ":" + col
	}
	return fmt.Sprintf("INSERT INTO candidates (%s) VALUES (%s)",
		strings.Join(cols, ", "), strings.Join(params, ", "))
}

func buildUpdateQuery() string {
	sets := make([]string, 0, len(writableColumns)+1)
	for _, col := range writableColumns {
		if col == "resume_text" {
			// extracted text survives unless a different file is being written
			sets = append(sets, "resume_text = CASE WHEN resume_path IS NOT DISTINCT FROM :resume_path THEN resume_text ELSE :resume_text END")
			continue
		}
		sets = append(sets, col+" = :"+col)
	}
	sets = append(sets, "updated_at = :updated_at")
	return fmt.Sprintf("UPDATE candidates SET %s WHERE id = :id AND user_id = :user_id",
		strings.Join(sets, ", "))
}

// Create inserts a new candidate
func (r *PostgresCandidateRepository) Create(ctx context.Context, c *candidate.Candidate) error {
	if _, err := r.db.NamedExecContext(ctx, insertQuery, c); err != nil {
		return errx.Wrap(err, "failed to create candidate", errx.TypeInternal)
	}
	return nil
}

// Update overwrites every editable column of an existing candidate
func (r *PostgresCandidateRepository) Update(ctx context.Context, c *candidate.Candidate) error {
	result, err := r.db.NamedExecContext(ctx, updateQuery, c)
	if err != nil {
		return errx.Wrap(err, "failed to update candidate", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to update candidate", errx.TypeInternal)
	}
	if rows == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", c.ID.String())
	}
	return nil
}

// GetByUserID retrieves the candidate owned by a user
func (r *PostgresCandidateRepository) GetByUserID(ctx context.Context, userID kernel.UserID) (*candidate.Candidate, error) {
	query := "SELECT " + selectColumns + " FROM candidates WHERE user_id = $1"

	var c candidate.Candidate
	if err := r.db.GetContext(ctx, &c, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, candidate.ErrCandidateNotFound().WithDetail("user_id", userID.String())
		}
		return nil, errx.Wrap(err, "failed to get candidate", errx.TypeInternal)
	}
	return &c, nil
}

// UpdateResumeText stores the text extracted from the resume file
func (r *PostgresCandidateRepository) UpdateResumeText(ctx context.Context, id kernel.CandidateID, text string) error {
	query := `UPDATE candidates SET resume_text = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, text)
	if err != nil {
		return errx.Wrap(err, "failed to update resume text", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to update resume text", errx.TypeInternal)
	}
	if rows == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}
	return nil
}
