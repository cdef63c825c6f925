// Package posting translates business events into balanced journal entries.
package posting

import (
	"time"

	"quipu/internal/core/types"
)

// Event is a business event that produces exactly one journal entry.
// Each variant carries the amounts its account mapping needs; the generator
// matches exhaustively so a new event type fails to compile until mapped.
type Event interface {
	// When returns the accounting date of the event.
	When() time.Time

	// Ref returns the source document reference.
	Ref() string

	event()
}

// base carries fields shared by all events.
type base struct {
	Date      time.Time
	Reference string
}

func (b base) When() time.Time { return b.Date }
func (b base) Ref() string     { return b.Reference }
func (base) event()            {}

// Purchase is an inventory purchase: goods received against a supplier
// invoice with IVA credit.
type Purchase struct {
	base

	// Subtotal is the goods value excluding tax
	Subtotal types.Money

	// Tax is the IVA credit component
	Tax types.Money
}

// NewPurchase creates a purchase event.
func NewPurchase(date time.Time, reference string, subtotal, tax types.Money) Purchase {
	return Purchase{base: base{Date: date, Reference: reference}, Subtotal: subtotal, Tax: tax}
}

// Sale is a customer sale. Revenue and cost recognition share one entry so a
// single event never produces two.
type Sale struct {
	base

	// Net is the revenue excluding tax
	Net types.Money

	// Tax is the IVA debit component
	Tax types.Money

	// COGS is the weighted-average cost of the delivered goods. Zero for
	// pure service sales, which then carry no cost side.
	COGS types.Money
}

// NewSale creates a sale event.
func NewSale(date time.Time, reference string, net, tax, cogs types.Money) Sale {
	return Sale{base: base{Date: date, Reference: reference}, Net: net, Tax: tax, COGS: cogs}
}

// AdjustmentEntry is a positive inventory adjustment valued at the current
// weighted-average cost.
type AdjustmentEntry struct {
	base
	Value types.Money
}

// NewAdjustmentEntry creates a positive adjustment event.
func NewAdjustmentEntry(date time.Time, reference string, value types.Money) AdjustmentEntry {
	return AdjustmentEntry{base: base{Date: date, Reference: reference}, Value: value}
}

// AdjustmentExit is a negative inventory adjustment valued at the current
// weighted-average cost.
type AdjustmentExit struct {
	base
	Value types.Money
}

// NewAdjustmentExit creates a negative adjustment event.
func NewAdjustmentExit(date time.Time, reference string, value types.Money) AdjustmentExit {
	return AdjustmentExit{base: base{Date: date, Reference: reference}, Value: value}
}

// InitialStock is the opening inventory load: goods brought onto the books at
// a stated cost, funded by equity rather than a supplier.
type InitialStock struct {
	base
	Value types.Money
}

// NewInitialStock creates an initial stock load event.
func NewInitialStock(date time.Time, reference string, value types.Money) InitialStock {
	return InitialStock{base: base{Date: date, Reference: reference}, Value: value}
}

// CustomerAdvance is a prepayment received from a customer.
type CustomerAdvance struct {
	base
	Amount types.Money
}

// NewCustomerAdvance creates a customer advance event.
func NewCustomerAdvance(date time.Time, reference string, amount types.Money) CustomerAdvance {
	return CustomerAdvance{base: base{Date: date, Reference: reference}, Amount: amount}
}

// SupplierAdvance is a prepayment made to a supplier.
type SupplierAdvance struct {
	base
	Amount types.Money
}

// NewSupplierAdvance creates a supplier advance event.
func NewSupplierAdvance(date time.Time, reference string, amount types.Money) SupplierAdvance {
	return SupplierAdvance{base: base{Date: date, Reference: reference}, Amount: amount}
}

// BankDeposit is cash moved into the bank. FromReceivable selects whether the
// credit settles accounts receivable or recognizes direct revenue.
type BankDeposit struct {
	base
	Amount         types.Money
	FromReceivable bool
}

// NewBankDeposit creates a bank deposit event.
func NewBankDeposit(date time.Time, reference string, amount types.Money, fromReceivable bool) BankDeposit {
	return BankDeposit{base: base{Date: date, Reference: reference}, Amount: amount, FromReceivable: fromReceivable}
}

// BankWithdrawal is cash leaving the bank. ToPayable selects whether the
// debit settles accounts payable or books a general expense.
type BankWithdrawal struct {
	base
	Amount    types.Money
	ToPayable bool
}

// NewBankWithdrawal creates a bank withdrawal event.
func NewBankWithdrawal(date time.Time, reference string, amount types.Money, toPayable bool) BankWithdrawal {
	return BankWithdrawal{base: base{Date: date, Reference: reference}, Amount: amount, ToPayable: toPayable}
}
