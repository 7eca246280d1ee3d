package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tech-up/commerce-api/internal/model"
)

// OrderRepo provides access to the 'orders' and 'order_items' tables.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns an OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// CreateWithStockDecrement records an order, its line items and the
// corresponding stock decrements in one transaction. Each decrement is a
// conditional update (`stock = stock - ? WHERE ... AND stock >= ?`); when
// it affects zero rows another checkout won the race or the cart is stale,
// the whole transaction rolls back and ErrInsufficientStock is returned.
// Stock therefore never goes negative and an order row only exists
// together with its decrements.
func (r *OrderRepo) CreateWithStockDecrement(ctx context.Context, o *model.Order, items []model.OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (reference, total, metodo_pago, cliente_nombre, cliente_email, direccion)
		 VALUES (?,?,?,?,?,?)`,
		o.Reference, o.Total, o.MetodoPago, o.Shipping.Nombre, o.Shipping.Email, o.Shipping.Direccion)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)

	for _, it := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, nombre, precio, cantidad) VALUES (?,?,?,?,?)`,
			o.ID, it.ProductID, it.Nombre, it.Precio, it.Cantidad); err != nil {
			return err
		}

		upd, err := tx.ExecContext(ctx,
			`UPDATE productos SET stock = stock - ? WHERE product_id = ? AND stock >= ?`,
			it.Cantidad, it.ProductID, it.Cantidad)
		if err != nil {
			return err
		}
		n, err := upd.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("product %s: %w", it.ProductID, ErrInsufficientStock)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByReference loads an order and its line items by public reference.
func (r *OrderRepo) GetByReference(ctx context.Context, reference string) (model.Order, []model.OrderItem, error) {
	var o model.Order
	err := r.db.QueryRowContext(ctx,
		`SELECT id, reference, total, metodo_pago, cliente_nombre, cliente_email, direccion, created_at
		 FROM orders WHERE reference = ? LIMIT 1`, reference).
		Scan(&o.ID, &o.Reference, &o.Total, &o.MetodoPago,
			&o.Shipping.Nombre, &o.Shipping.Email, &o.Shipping.Direccion, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Order{}, nil, ErrNotFound
	}
	if err != nil {
		return model.Order{}, nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, nombre, precio, cantidad FROM order_items WHERE order_id = ?`, o.ID)
	if err != nil {
		return model.Order{}, nil, err
	}
	defer rows.Close()

	items := make([]model.OrderItem, 0)
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ProductID, &it.Nombre, &it.Precio, &it.Cantidad); err != nil {
			return model.Order{}, nil, err
		}
		items = append(items, it)
	}
	return o, items, rows.Err()
}
