package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        int64           `json:"id" db:"id"`
	Title     string          `json:"title" db:"title"`
	Summary   string          `json:"summary" db:"summary"`
	Price     decimal.Decimal `json:"price" db:"price"`
	DateAdded time.Time       `json:"date_added" db:"date_added"`
}
