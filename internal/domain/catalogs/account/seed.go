package account

// Account codes of the minimal Bolivian chart of accounts.
// The posting generator addresses accounts by these codes only.
const (
	CodeCaja               = "1111"
	CodeBanco              = "1112"
	CodeCuentasPorCobrar   = "1131"
	CodeInventarios        = "1141"
	CodeCreditoFiscalIVA   = "1143"
	CodeAnticiposProveedor = "1151"
	CodeCuentasPorPagar    = "2111"
	CodeDebitoFiscalIVA    = "2113"
	CodeAnticiposClientes  = "2121"
	CodeCapital            = "3111"
	CodeVentas             = "4111"
	CodeAjusteGanancia     = "4211"
	CodeCostoDeVentas      = "5111"
	CodeAjustePerdida      = "5211"
	CodeGastosGenerales    = "5311"
)

// SeedPlan returns the fixed chart of accounts created at first startup.
func SeedPlan() []*Account {
	return []*Account{
		New(CodeCaja, "Caja Moneda Nacional", KindAsset),
		New(CodeBanco, "Banco Moneda Nacional", KindAsset),
		New(CodeCuentasPorCobrar, "Cuentas por Cobrar Comerciales", KindAsset),
		New(CodeInventarios, "Inventarios", KindAsset),
		New(CodeCreditoFiscalIVA, "Credito Fiscal IVA", KindAsset),
		New(CodeAnticiposProveedor, "Anticipos a Proveedores", KindAsset),
		New(CodeCuentasPorPagar, "Cuentas por Pagar Comerciales", KindLiability),
		New(CodeDebitoFiscalIVA, "Debito Fiscal IVA", KindLiability),
		New(CodeAnticiposClientes, "Anticipos de Clientes", KindLiability),
		New(CodeCapital, "Capital Social", KindEquity),
		New(CodeVentas, "Ventas", KindRevenue),
		New(CodeAjusteGanancia, "Ganancia por Ajuste de Inventario", KindRevenue),
		New(CodeCostoDeVentas, "Costo de Ventas", KindExpense),
		New(CodeAjustePerdida, "Perdida por Ajuste de Inventario", KindExpense),
		New(CodeGastosGenerales, "Gastos Generales", KindExpense),
	}
}
