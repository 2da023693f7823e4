package views

import (
	"leverage/core"

	"github.com/shopspring/decimal"
)

// Leverage leverage of a position
type Leverage struct {
	*core.LeverageState
	Position *core.Position `json:"position"`
}

// Unloop unloop parameters with the state they were computed from
type Unloop struct {
	*core.UnloopParameters
	Target decimal.Decimal     `json:"target"`
	State  *core.LeverageState `json:"state"`
}

// Loop loop parameters with the bound they were checked against
type Loop struct {
	*core.LoopParameters
	Target      decimal.Decimal     `json:"target"`
	MaxLeverage decimal.Decimal     `json:"max_leverage"`
	State       *core.LeverageState `json:"state"`
}

// MaxLeverage market bound of a pair
type MaxLeverage struct {
	Collateral  string          `json:"collateral"`
	Debt        string          `json:"debt"`
	MaxLeverage decimal.Decimal `json:"max_leverage"`
}
