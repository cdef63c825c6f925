package posting

import (
	"fmt"

	"quipu/internal/core/apperror"
	"quipu/internal/core/types"
	"quipu/internal/domain/catalogs/account"
	"quipu/internal/domain/journal"
)

// Generator builds one balanced journal entry per business event. It is
// stateless; amounts (including the weighted-average cost for COGS lines)
// arrive inside the event.
type Generator struct {
	names map[string]string
}

// NewGenerator creates a Generator with account names taken from the seed
// chart of accounts.
func NewGenerator() *Generator {
	names := make(map[string]string)
	for _, a := range account.SeedPlan() {
		names[a.Code] = a.Name
	}
	return &Generator{names: names}
}

// BuildEntry maps the event to its account lines and returns a draft entry
// guaranteed to balance. Events whose amounts cannot produce a balanced entry
// fail with UNBALANCEABLE_EVENT.
func (g *Generator) BuildEntry(ev Event) (*journal.Entry, error) {
	var (
		lines   []journal.Line
		concept string
		err     error
	)

	switch e := ev.(type) {
	case Purchase:
		lines, err = g.purchaseLines(e)
		concept = "Compra de mercaderia"
	case Sale:
		lines, err = g.saleLines(e)
		concept = "Venta de mercaderia"
	case AdjustmentEntry:
		lines, err = g.pairLines(e.Value, account.CodeInventarios, account.CodeAjusteGanancia)
		concept = "Ajuste de inventario (entrada)"
	case AdjustmentExit:
		lines, err = g.pairLines(e.Value, account.CodeAjustePerdida, account.CodeInventarios)
		concept = "Ajuste de inventario (salida)"
	case InitialStock:
		lines, err = g.pairLines(e.Value, account.CodeInventarios, account.CodeCapital)
		concept = "Carga inicial de inventario"
	case CustomerAdvance:
		lines, err = g.pairLines(e.Amount, account.CodeCaja, account.CodeAnticiposClientes)
		concept = "Anticipo de cliente"
	case SupplierAdvance:
		lines, err = g.pairLines(e.Amount, account.CodeAnticiposProveedor, account.CodeCaja)
		concept = "Anticipo a proveedor"
	case BankDeposit:
		credit := account.CodeVentas
		if e.FromReceivable {
			credit = account.CodeCuentasPorCobrar
		}
		lines, err = g.pairLines(e.Amount, account.CodeBanco, credit)
		concept = "Deposito bancario"
	case BankWithdrawal:
		debit := account.CodeGastosGenerales
		if e.ToPayable {
			debit = account.CodeCuentasPorPagar
		}
		lines, err = g.pairLines(e.Amount, debit, account.CodeBanco)
		concept = "Retiro bancario"
	default:
		return nil, apperror.NewUnbalanceable(fmt.Sprintf("unknown event type %T", ev))
	}
	if err != nil {
		return nil, err
	}

	entry := journal.NewEntry(ev.When(), concept, ev.Ref(), lines)
	if err := entry.CheckBalance(); err != nil {
		return nil, err
	}
	return entry, nil
}

// Purchase: inventory and IVA credit against accounts payable.
func (g *Generator) purchaseLines(e Purchase) ([]journal.Line, error) {
	if !e.Subtotal.IsPositive() {
		return nil, apperror.NewUnbalanceable("purchase subtotal must be positive")
	}
	if e.Tax.IsNegative() {
		return nil, apperror.NewUnbalanceable("purchase tax cannot be negative")
	}

	lines := []journal.Line{
		g.debit(account.CodeInventarios, e.Subtotal),
	}
	if e.Tax.IsPositive() {
		lines = append(lines, g.debit(account.CodeCreditoFiscalIVA, e.Tax))
	}
	lines = append(lines, g.credit(account.CodeCuentasPorPagar, e.Subtotal.Add(e.Tax)))
	return lines, nil
}

// Sale: one entry covering both revenue recognition and cost of goods sold.
func (g *Generator) saleLines(e Sale) ([]journal.Line, error) {
	if !e.Net.IsPositive() {
		return nil, apperror.NewUnbalanceable("sale net amount must be positive")
	}
	if e.Tax.IsNegative() || e.COGS.IsNegative() {
		return nil, apperror.NewUnbalanceable("sale tax and cost cannot be negative")
	}

	lines := []journal.Line{
		g.debit(account.CodeCuentasPorCobrar, e.Net.Add(e.Tax)),
		g.credit(account.CodeVentas, e.Net),
	}
	if e.Tax.IsPositive() {
		lines = append(lines, g.credit(account.CodeDebitoFiscalIVA, e.Tax))
	}
	if e.COGS.IsPositive() {
		lines = append(lines,
			g.debit(account.CodeCostoDeVentas, e.COGS),
			g.credit(account.CodeInventarios, e.COGS),
		)
	}
	return lines, nil
}

// pairLines builds the two-line mapping shared by advances, adjustments and
// bank movements.
func (g *Generator) pairLines(amount types.Money, debitCode, creditCode string) ([]journal.Line, error) {
	if !amount.IsPositive() {
		return nil, apperror.NewUnbalanceable("amount must be positive")
	}
	return []journal.Line{
		g.debit(debitCode, amount),
		g.credit(creditCode, amount),
	}, nil
}

func (g *Generator) debit(code string, amount types.Money) journal.Line {
	return journal.Line{
		AccountCode: code,
		AccountName: g.names[code],
		Debit:       amount,
		Credit:      types.Zero(),
	}
}

func (g *Generator) credit(code string, amount types.Money) journal.Line {
	return journal.Line{
		AccountCode: code,
		AccountName: g.names[code],
		Debit:       types.Zero(),
		Credit:      amount,
	}
}
