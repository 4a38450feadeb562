package entity

import "github.com/shopspring/decimal"

// Escalas de las columnas NUMERIC: dinero con 2 decimales, peso con 3.
const (
	MoneyScale  = 2
	WeightScale = 3
)

var hundred = decimal.NewFromInt(100)

// RoundMoney redondea half-up a 2 decimales.
func RoundMoney(d decimal.Decimal) decimal.Decimal { return d.Round(MoneyScale) }

// RoundWeight redondea half-up a 3 decimales.
func RoundWeight(d decimal.Decimal) decimal.Decimal { return d.Round(WeightScale) }
