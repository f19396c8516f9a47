package domain

import "time"

// ProductCostRecord representa um produto do catálogo com seu custo unitário
// médio. Custo zero significa produto ainda sem custo apurado.
type ProductCostRecord struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Model       string    `json:"model,omitempty"`
	AvgUnitCost float64   `json:"avg_unit_cost"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
