package core

import (
	"encoding/json"

	"leverage/pkg/fixed"

	"github.com/ethereum/go-ethereum/common"
)

// Withdraw either the entire collateral balance or an exact amount
type Withdraw struct {
	All    bool
	Amount fixed.Amount
}

// WithdrawAll withdraw the whole balance, avoids leaving dust behind
func WithdrawAll() Withdraw {
	return Withdraw{All: true}
}

// WithdrawExact withdraw exactly amount
func WithdrawExact(amount fixed.Amount) Withdraw {
	return Withdraw{Amount: amount}
}

func (w Withdraw) String() string {
	if w.All {
		return "all"
	}

	return w.Amount.String()
}

// MarshalJSON {"all":true} or {"amount":"123"}
func (w Withdraw) MarshalJSON() ([]byte, error) {
	if w.All {
		return json.Marshal(struct {
			All bool `json:"all"`
		}{true})
	}

	return json.Marshal(struct {
		Amount fixed.Amount `json:"amount"`
	}{w.Amount})
}

// Swap swap leg of a loop or unloop
type Swap struct {
	From         common.Address `json:"from_token"`
	To           common.Address `json:"to_token"`
	AmountToSwap fixed.Amount   `json:"amount_to_swap"`
}

// UnloopParameters token amounts needed to move a position down to a target leverage
type UnloopParameters struct {
	// RepayAmount debt token amount to repay
	RepayAmount fixed.Amount `json:"repay_amount_token"`
	// Withdraw collateral to withdraw
	Withdraw Withdraw `json:"withdraw_amount"`
	// ATokenAmount collateral aToken allowance, includes the accrual buffer
	ATokenAmount fixed.Amount `json:"a_token_amount"`
	Swap         Swap         `json:"swap"`
	// TargetCollateral collateral left after the unloop, before buffers
	TargetCollateral fixed.Amount `json:"target_collateral"`
	// TargetDebt debt left after the unloop, before buffers
	TargetDebt fixed.Amount `json:"target_debt"`
	FullClose  bool         `json:"full_close"`
	// Empty nothing to unloop, the position has no meaningful equity
	Empty bool `json:"empty"`
}
