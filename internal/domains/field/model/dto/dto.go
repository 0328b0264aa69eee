package dto

import (
	"fieldbook/internal/domains/field/model"
)

type FieldResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Size         int     `json:"size"`
	PricePerHour float64 `json:"pricePerHour"`
}

func (r *FieldResponse) FromModel(model model.Field) {
	r.ID = model.ID
	r.Name = model.Name
	r.Size = model.Size
	r.PricePerHour = model.PricePerHour
}

type GetFieldsResponse []FieldResponse

func (r *GetFieldsResponse) FromModels(models []model.Field) {
	*r = make(GetFieldsResponse, len(models))
	for i, mod := range models {
		(*r)[i].FromModel(mod)
	}
}
