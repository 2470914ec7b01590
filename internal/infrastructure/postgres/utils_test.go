package postgres

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%`, escapeLike("50%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
}

func TestValidIDs(t *testing.T) {
	ids := validIDs([]string{"8f14e45f-ceea-467f-a0e6-5f7a1f1e0b3c", "IBU-600", ""})
	assert.Equal(t, []string{"8f14e45f-ceea-467f-a0e6-5f7a1f1e0b3c"}, ids)
}

func TestPgErrorCodes(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(errors.New("otro")))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
}

func TestMigrationsEmbebidas(t *testing.T) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "001_init.sql", entries[0].Name())
}

func TestSearchSQL(t *testing.T) {
	like := "%" + escapeLike("ibu") + "%"
	sql, args, err := psql.Select("id").From("products").
		Where(squirrel.Or{squirrel.ILike{"name": like}, squirrel.ILike{"sku": like}}).
		Limit(10).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM products WHERE (name ILIKE $1 OR sku ILIKE $2) LIMIT 10", sql)
	assert.Equal(t, []any{"%ibu%", "%ibu%"}, args)
}
