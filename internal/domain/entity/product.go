package entity

import (
	"encoding/json"
	"time"
)

// Product representa un producto del catálogo de un proveedor.
// El precio vive en SupplierListItem: un mismo producto puede ofrecerse en varias listas.
type Product struct {
	ID          string
	SupplierID  string
	SKU         string // código único por proveedor
	Name        string
	Description string
	ImageURL    string
	UnitMeasure string
	Attributes  json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
