package models

// SimplifiedDebt is a single transfer produced by debt simplification.
// It is derived from expenses and never stored; Amount is always > 0.01.
type SimplifiedDebt struct {
	// Debtor is the user who pays.
	Debtor User `json:"debtor"`

	// Creditor is the user who receives.
	Creditor User `json:"creditor"`

	// Amount is the transfer amount.
	Amount float64 `json:"amount"`
}
