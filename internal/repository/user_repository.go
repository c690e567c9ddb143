package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/maheshrc27/dreamwall/internal/models"
)

type UserFilter struct {
	Search string
	Role   string
	Status string
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, bool, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, bool, error)
	Create(ctx context.Context, tx *sqlx.Tx, user *models.User) (int64, error)
	Update(ctx context.Context, id int64, fields map[string]any) (bool, error)
	List(ctx context.Context, f UserFilter, p models.Paging) ([]models.User, int64, error)
	Remove(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

var userColumns = []string{
	"id", "name", "phone_number", "email", "password_hash", "is_locked",
	"role", "status", "created_at", "updated_at",
}

func (r *userRepository) getBy(ctx context.Context, where sq.Eq) (*models.User, bool, error) {
	var user models.User
	found, err := getOne(ctx, r.db, &user, psql.Select(userColumns...).From("users").Where(where))
	if err != nil || !found {
		return nil, false, err
	}
	return &user, true, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	return r.getBy(ctx, sq.Eq{"id": id})
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*models.User, bool, error) {
	return r.getBy(ctx, sq.Eq{"phone_number": phone})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	return r.getBy(ctx, sq.Eq{"email": email})
}

func (r *userRepository) Create(ctx context.Context, tx *sqlx.Tx, user *models.User) (int64, error) {
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}

	query, args, err := psql.Insert("users").
		Columns("name", "phone_number", "email", "password_hash", "role", "status").
		Values(user.Name, user.PhoneNumber, user.Email, user.PasswordHash, user.Role, user.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, err
	}

	row := pick(r.db, tx).QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Update writes the given columns. Callers restrict the keys to known
// columns.
func (r *userRepository) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	if len(fields) == 0 {
		_, found, err := r.GetByID(ctx, id)
		return found, err
	}
	b := psql.Update("users").SetMap(fields).Set("updated_at", sq.Expr("NOW()")).Where(sq.Eq{"id": id})
	return exec(ctx, r.db, b)
}

func (r *userRepository) List(ctx context.Context, f UserFilter, p models.Paging) ([]models.User, int64, error) {
	where := sq.And{}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		where = append(where, sq.Or{
			sq.ILike{"name": like},
			sq.ILike{"phone_number": like},
			sq.ILike{"email": like},
		})
	}
	if f.Role != "" {
		where = append(where, sq.Eq{"role": f.Role})
	}
	if f.Status != "" {
		where = append(where, sq.Eq{"status": f.Status})
	}

	total, err := count(ctx, r.db, psql.Select("COUNT(*)").From("users").Where(where))
	if err != nil {
		return nil, 0, err
	}

	users := []models.User{}
	b := psql.Select(userColumns...).From("users").Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(p.Limit)).Offset(uint64(p.Offset()))
	if err := selectAll(ctx, r.db, &users, b); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) Remove(ctx context.Context, id int64) (bool, error) {
	return exec(ctx, r.db, psql.Delete("users").Where(sq.Eq{"id": id}))
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("users"))
}
