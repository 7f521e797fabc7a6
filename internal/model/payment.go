package model

import "github.com/shopspring/decimal"

// Payment status taxonomy shared by repair orders and sales.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPartial = "partial"
	PaymentStatusPending = "pending"
)

// Payment methods. Orders accept cash/transfer/not_paid/account; sales accept
// cash/card/transfer/multiple/account. "account" (cuenta corriente) defers
// payment and accrues a balance paid down over multiple operations.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentMultiple = "multiple"
	PaymentNotPaid  = "not_paid"
	PaymentAccount  = "account"
)

// ComputePaymentStatus applies the shared paid/partial/pending threshold rule:
// balance = total − paid; balance ≤ 0 means fully paid (balance clamps to 0),
// any positive payment means partial, otherwise pending. Thresholding is exact
// decimal comparison, never float tolerance.
func ComputePaymentStatus(total, paid decimal.Decimal) (decimal.Decimal, string) {
	balance := total.Sub(paid)
	switch {
	case balance.LessThanOrEqual(decimal.Zero):
		return decimal.Zero, PaymentStatusPaid
	case paid.GreaterThan(decimal.Zero):
		return balance, PaymentStatusPartial
	default:
		return balance, PaymentStatusPending
	}
}
