package domain

import "time"

// SaleRecord representa uma venda já persistida, consumida pelo motor de
// relatórios como snapshot imutável. Campos numéricos ausentes valem zero.
type SaleRecord struct {
	ID          int64      `json:"id"`
	ProductID   *int64     `json:"product_id,omitempty"`
	ProductName string     `json:"product_name"`
	Model       string     `json:"model"`
	Quantity    int        `json:"quantity"`
	UnitPrice   float64    `json:"unit_price"`
	Date        *time.Time `json:"date"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Amount retorna o valor bruto da venda (preço unitário x quantidade).
func (s *SaleRecord) Amount() float64 {
	return s.UnitPrice * float64(s.Quantity)
}

// BucketDate retorna a data usada para agrupamento mensal: a data da
// transação quando presente, senão a data de criação do registro.
func (s *SaleRecord) BucketDate() time.Time {
	if s.Date != nil {
		return *s.Date
	}
	return s.CreatedAt
}

// DisplayName retorna a chave de exibição do produto vendido, na ordem
// modelo, nome do produto e por fim "Unknown".
func (s *SaleRecord) DisplayName() string {
	if s.Model != "" {
		return s.Model
	}
	if s.ProductName != "" {
		return s.ProductName
	}
	return "Unknown"
}
