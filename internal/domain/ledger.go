package domain

import "fmt"

// OperationalBudget is a running-cost allocation outside the project lifecycle.
type OperationalBudget struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     Date    `json:"date"`
}

func (b *OperationalBudget) Validate() error {
	return firstErr(
		requireText("name", b.Name),
		requireText("category", b.Category),
		requireNonNegative("amount", b.Amount),
		requireDate("date", b.Date),
	)
}

// Expense is a recorded spend. Only Description may change after creation.
type Expense struct {
	ID          string      `json:"id,omitempty"`
	Date        Date        `json:"date"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
	PaymentType PaymentType `json:"paymentType"`
}

func (e *Expense) Validate() error {
	if !e.PaymentType.Valid() {
		return invalid("paymentType", fmt.Sprintf("unknown payment type %q", e.PaymentType))
	}
	return firstErr(
		requireDate("date", e.Date),
		requireText("category", e.Category),
		requireText("description", e.Description),
		requireNonNegative("amount", e.Amount),
	)
}
