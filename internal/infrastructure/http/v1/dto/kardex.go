package dto

import "quipu/internal/domain/kardex"

// PositionResponse is a product's valuation position.
type PositionResponse struct {
	Stock    string `json:"stock"`
	UnitCost string `json:"unitCost"`
	Value    string `json:"value"`
}

// FromPosition creates PositionResponse from a position.
func FromPosition(p kardex.Position) PositionResponse {
	return PositionResponse{
		Stock:    p.Stock.String(),
		UnitCost: p.UnitCost.StringFixed(4),
		Value:    p.Value().StringFixed(2),
	}
}
