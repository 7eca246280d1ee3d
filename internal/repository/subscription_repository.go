package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tech-up/commerce-api/internal/model"
)

// SubscriptionRepo provides access to the newsletter 'subscriptions' table.
type SubscriptionRepo struct {
	db *sql.DB
}

// NewSubscriptionRepo returns a SubscriptionRepo bound to the given database.
func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{db: db} }

// Add records a new subscriber. 'activo' and 'fecha_suscripcion' take their
// column defaults. Duplicates yield ErrAlreadySubscribed.
func (r *SubscriptionRepo) Add(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := r.db.ExecContext(ctx, "INSERT INTO subscriptions (email) VALUES (?)", email)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrAlreadySubscribed
	}
	return err
}

// IsSubscribed reports whether the email already has a row.
func (r *SubscriptionRepo) IsSubscribed(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM subscriptions WHERE email = ? LIMIT 1", email).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// ListActive returns every active subscriber, oldest first.
func (r *SubscriptionRepo) ListActive(ctx context.Context) ([]model.Subscription, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, email, activo, fecha_suscripcion FROM subscriptions WHERE activo = 1 ORDER BY fecha_suscripcion ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]model.Subscription, 0)
	for rows.Next() {
		var s model.Subscription
		if err := rows.Scan(&s.ID, &s.Email, &s.Activo, &s.FechaSuscripcion); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// CountActive returns the number of active subscribers.
func (r *SubscriptionRepo) CountActive(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM subscriptions WHERE activo = 1").Scan(&total)
	return total, err
}
