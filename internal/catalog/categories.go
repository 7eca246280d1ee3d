// Package catalog holds the static storefront taxonomy. Categories are
// in-process data, like the coupon catalog: the storefront renders them
// on the landing page and products reference them by slug.
package catalog

// Category is one storefront section.
type Category struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Slug        string `json:"slug"`
	Imagen      string `json:"imagen"`
}

var categories = []Category{
	{
		ID:          1,
		Nombre:      "Laptops",
		Descripcion: "Computadoras portátiles de alto rendimiento",
		Slug:        "laptops",
		Imagen:      "assets/images/categoria-laptops.jpg",
	},
	{
		ID:          2,
		Nombre:      "Desktops",
		Descripcion: "Estaciones de trabajo y gaming de máximo rendimiento",
		Slug:        "desktops",
		Imagen:      "assets/images/categoria-desktops.jpg",
	},
	{
		ID:          3,
		Nombre:      "Accesorios",
		Descripcion: "Periféricos y complementos para tu setup",
		Slug:        "accesorios",
		Imagen:      "assets/images/categoria-accesorios.jpg",
	},
}

// Categories returns every storefront category.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}
