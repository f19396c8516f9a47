package domain

import "time"

// DefaultExpenseCategory é a categoria atribuída a despesas sem rótulo.
const DefaultExpenseCategory = "其他"

// ExpenseRecord representa uma despesa operacional. O valor pode ser negativo
// para representar estornos; o motor não rejeita valores negativos.
type ExpenseRecord struct {
	ID        int64      `json:"id"`
	Category  string     `json:"category"`
	Amount    float64    `json:"amount"`
	Date      *time.Time `json:"date"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// BucketDate retorna a data usada para agrupamento mensal: a data da despesa
// quando presente, senão a data de criação do registro.
func (e *ExpenseRecord) BucketDate() time.Time {
	if e.Date != nil {
		return *e.Date
	}
	return e.CreatedAt
}

// CategoryLabel retorna a categoria da despesa, com fallback para a categoria
// padrão quando o rótulo está em branco.
func (e *ExpenseRecord) CategoryLabel() string {
	if e.Category == "" {
		return DefaultExpenseCategory
	}
	return e.Category
}
