package core

import (
	"leverage/pkg/fixed"
)

// LoopParameters token amounts needed to move a position up to a target leverage
type LoopParameters struct {
	// Deposit extra collateral supplied before borrowing
	Deposit fixed.Amount `json:"deposit"`
	// BorrowAmount debt token amount to borrow
	BorrowAmount fixed.Amount `json:"borrow_amount"`
	Swap         Swap         `json:"swap"`
	// ExpectedCollateral collateral bought with the borrowed amount at quoted prices
	ExpectedCollateral fixed.Amount `json:"expected_collateral"`
	// MinCollateralOut expected collateral less the swap buffer
	MinCollateralOut fixed.Amount `json:"min_collateral_out"`
	TargetCollateral fixed.Amount `json:"target_collateral"`
	TargetDebt       fixed.Amount `json:"target_debt"`
	Degenerate       bool         `json:"degenerate"`
}
