package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/database"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/user/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserConflict = errors.New("a user with this email already exists")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id int) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id int) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO usuarios (nombre, email, rol, estado, password_hash, fecha)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	user.Status = domain.StatusActive
	user.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Role, user.Status, user.PasswordHash, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrUserConflict
		}
		logger.Error("CreateUser: failed to insert user", err, nil)
		return err
	}
	return nil
}

func (r *postgresUserRepository) GetUserByID(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT id, nombre, email, rol, estado, password_hash, fecha FROM usuarios WHERE id = $1`
	return r.getUser(ctx, query, id)
}

func (r *postgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, nombre, email, rol, estado, password_hash, fecha FROM usuarios WHERE email = $1`
	return r.getUser(ctx, query, email)
}

func (r *postgresUserRepository) getUser(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.Error("getUser: query failed", err, nil)
		return nil, err
	}
	return &u, nil
}

func (r *postgresUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, nombre, email, rol, estado, password_hash, fecha FROM usuarios ORDER BY nombre ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListUsers: query failed", err, nil)
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.PasswordHash, &u.CreatedAt); err != nil {
			logger.Error("ListUsers: scan failed", err, nil)
			return nil, err
		}
		u.PasswordHash = ""
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	query := `UPDATE usuarios SET nombre = $1, rol = $2, estado = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, user.Name, user.Role, user.Status, user.ID)
	if err != nil {
		logger.Error("UpdateUser: exec failed", err, nil)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepository) DeleteUser(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		logger.Error("DeleteUser: exec failed", err, nil)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
