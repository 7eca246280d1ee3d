package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/tech-up/commerce-api/internal/model"
)

// UserRepo provides access to the 'users' table, including the lockout
// counters and password-reset token columns.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "id, nombre, correo, contrasena, rol, intentos_fallidos, cuenta_bloqueada, reset_token, reset_token_expires, created_at"

// Create inserts a user with the default 'usuario' role and returns its id.
func (r *UserRepo) Create(ctx context.Context, nombre, correo, passwordHash string) (uint64, error) {
	correo = strings.ToLower(strings.TrimSpace(correo))
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (nombre, correo, contrasena, rol) VALUES (?,?,?,?)",
		nombre, correo, passwordHash, model.RoleUser)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, correo string) (model.User, error) {
	correo = strings.ToLower(strings.TrimSpace(correo))
	return r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE correo = ? LIMIT 1", correo))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id))
}

// SaveLoginState persists the failure counter and unlock deadline computed
// by the lockout state machine.
func (r *UserRepo) SaveLoginState(ctx context.Context, id uint64, failures int, lockedUntil *time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET intentos_fallidos = ?, cuenta_bloqueada = ? WHERE id = ?",
		failures, lockedUntil, id)
	return err
}

// SaveResetToken stores a password-reset token and its expiry.
func (r *UserRepo) SaveResetToken(ctx context.Context, id uint64, token string, expires time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET reset_token = ?, reset_token_expires = ? WHERE id = ?",
		token, expires, id)
	return err
}

// GetByResetToken fetches the user holding a still-valid reset token.
func (r *UserRepo) GetByResetToken(ctx context.Context, token string) (model.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE reset_token = ? AND reset_token_expires > UTC_TIMESTAMP() LIMIT 1",
		token))
}

// UpdatePassword replaces the password hash and clears any reset token.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET contrasena = ?, reset_token = NULL, reset_token_expires = NULL WHERE id = ?",
		passwordHash, id)
	return err
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	var bloqueada sql.NullTime
	var token sql.NullString
	var tokenExp sql.NullTime
	err := row.Scan(&u.ID, &u.Nombre, &u.Correo, &u.Contrasena, &u.Rol,
		&u.IntentosFallidos, &bloqueada, &token, &tokenExp, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	if bloqueada.Valid {
		t := bloqueada.Time
		u.CuentaBloqueada = &t
	}
	if token.Valid {
		s := token.String
		u.ResetToken = &s
	}
	if tokenExp.Valid {
		t := tokenExp.Time
		u.ResetTokenExpires = &t
	}
	return u, nil
}
