// Package model defines the domain types shared across repositories,
// services and handlers.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product mirrors the 'productos' table. ProductID is the public business
// key used by the storefront; ID is the surrogate key used by admin
// update/delete operations. Precio is carried as a decimal so money math
// never goes through floating point.
type Product struct {
	ID          uint64          `json:"id"`
	ProductID   string          `json:"product_id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       uint32          `json:"stock"`
	Categoria   string          `json:"categoria"`
	EnOferta    bool            `json:"en_oferta"`
	Imagen      string          `json:"imagen"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
