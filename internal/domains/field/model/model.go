package model

import "fieldbook/shared/model"

const (
	TableName  = "fields"
	EntityName = "field"

	FieldID           = "id"
	FieldName         = "name"
	FieldSize         = "size"
	FieldPricePerHour = "price_per_hour"
)

// Field is read-only reference data; rows are seeded by migration and never
// written through this service.
type Field struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Size         int     `db:"size"`
	PricePerHour float64 `db:"price_per_hour"`
	model.Metadata
}
