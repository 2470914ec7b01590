package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

var userColumns = []string{"id", "username", "password_hash", "role", "is_active", "created_at"}

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// entity.User se escanea directo: sus campos coinciden con las columnas en snake_case.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	sql, args, err := psql.Insert("users").
		Columns(userColumns...).
		Values(u.ID, u.Username, u.PasswordHash, u.Role, u.IsActive, u.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, psql.Select(userColumns...).From("users").Where(squirrel.Eq{"id": id}))
}

// GetByUsername busca sin distinguir mayúsculas.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, psql.Select(userColumns...).From("users").
		Where(squirrel.Expr("lower(username) = lower(?)", username)))
}

func (r *UserRepo) getOne(ctx context.Context, b squirrel.SelectBuilder) (*entity.User, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user: %w", err)
	}
	var u entity.User
	if err := pgxscan.Get(ctx, r.q, &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// List lista usuarios por fecha de alta.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	sql, args, err := psql.Select(userColumns...).From("users").OrderBy("created_at", "username").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users: %w", err)
	}
	var list []*entity.User
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return list, nil
}
