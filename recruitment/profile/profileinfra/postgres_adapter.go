package profileinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/recruitment/profile"
	"github.com/jmoiron/sqlx"
)

type PostgresProfileRepository struct {
	db *sqlx.DB
}

func NewPostgresProfileRepository(db *sqlx.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

var _ profile.Repository = (*PostgresProfileRepository)(nil)

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id kernel.UserID) (*profile.Profile, error) {
	query := `
		SELECT id, name, email, mobile, avatar, role, created_at, updated_at
		FROM users
		WHERE id = $1`

	var p profile.Profile
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, profile.ErrProfileNotFound().WithDetail("user_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to get profile", errx.TypeInternal)
	}
	return &p, nil
}
