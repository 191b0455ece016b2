package profileinfra

import (
	"context"
	"os"
	"testing"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/pkg/migrations"
	"github.com/Abraxas-365/seeker/recruitment/profile"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresProfileRepository_GetByID(t *testing.T) {
	dsn := os.Getenv("SEEKER_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SEEKER_TEST_DATABASE_URL not set")
	}
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, migrations.Up(ctx, db.DB))
	repo := NewPostgresProfileRepository(db)

	id := kernel.UserID("user-" + uuid.NewString())
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, mobile, role) VALUES ($1, 'Asha', $2, '9876543210', 'jobseeker')`,
		id, id.String()+"@example.com")
	require.NoError(t, err)
	t.Cleanup(func() { db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id) })

	p, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.Name)
	assert.Equal(t, "9876543210", p.Mobile)
	assert.Equal(t, "", p.Avatar)
	assert.Equal(t, kernel.RoleJobSeeker, p.Role)
	assert.True(t, p.IsJobSeeker())

	_, err = repo.GetByID(ctx, "missing-"+kernel.UserID(uuid.NewString()))
	assert.True(t, errx.IsCode(err, profile.CodeProfileNotFound))
}
