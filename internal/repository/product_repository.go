package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tech-up/commerce-api/internal/model"
)

const productColumns = "id, product_id, nombre, descripcion, precio, stock, categoria, en_oferta, imagen, created_at, updated_at"

// ProductRepo provides access to the 'productos' table.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo returns a ProductRepo bound to the given database.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

// ProductFilter narrows List results. Zero values mean "no filter".
// Precio takes the storefront buckets: "0-10000", "10001-30000", "30001+".
type ProductFilter struct {
	Categoria string
	Oferta    *bool
	Precio    string
}

// List returns catalog products matching the filter, newest first.
func (r *ProductRepo) List(ctx context.Context, f ProductFilter) ([]model.Product, error) {
	query := "SELECT " + productColumns + " FROM productos"
	var conds []string
	var args []interface{}

	if f.Categoria != "" && f.Categoria != "all" {
		conds = append(conds, "categoria = ?")
		args = append(args, f.Categoria)
	}
	if f.Oferta != nil {
		conds = append(conds, "en_oferta = ?")
		args = append(args, *f.Oferta)
	}
	switch f.Precio {
	case "0-10000":
		conds = append(conds, "precio <= 10000")
	case "10001-30000":
		conds = append(conds, "precio BETWEEN 10001 AND 30000")
	case "30001+":
		conds = append(conds, "precio > 30000")
		// anything else: no price filter
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetByBusinessID fetches one product by its public product_id key.
func (r *ProductRepo) GetByBusinessID(ctx context.Context, productID string) (model.Product, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM productos WHERE product_id = ? LIMIT 1", productID)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return model.Product{}, ErrNotFound
	}
	return p, err
}

// FindByBusinessIDs fetches every product whose product_id is in ids.
// Missing ids are simply absent from the result; the cart validator treats
// them as unknown lines.
func (r *ProductRepo) FindByBusinessIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	query := "SELECT " + productColumns + " FROM productos WHERE product_id IN (" +
		strings.Join(placeholders, ",") + ")"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]model.Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Create inserts a new product and returns its surrogate id. A duplicate
// business key yields ErrProductExists.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO productos (product_id, nombre, descripcion, precio, stock, categoria, imagen, en_oferta)
		 VALUES (?,?,?,?,?,?,?,?)`,
		p.ProductID, p.Nombre, p.Descripcion, p.Precio, p.Stock, p.Categoria, p.Imagen, p.EnOferta)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrProductExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update overwrites a product's editable fields by surrogate id.
func (r *ProductRepo) Update(ctx context.Context, id uint64, p *model.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE productos
		 SET nombre=?, descripcion=?, precio=?, stock=?, categoria=?, imagen=?, en_oferta=?
		 WHERE id=?`,
		p.Nombre, p.Descripcion, p.Precio, p.Stock, p.Categoria, p.Imagen, p.EnOferta, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product by surrogate id.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM productos WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(s scanner) (model.Product, error) {
	var p model.Product
	err := s.Scan(&p.ID, &p.ProductID, &p.Nombre, &p.Descripcion, &p.Precio,
		&p.Stock, &p.Categoria, &p.EnOferta, &p.Imagen, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
