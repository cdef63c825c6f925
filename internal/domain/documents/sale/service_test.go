package sale

import (
	"context"
	"testing"
	"time"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/core/numerator"
	"quipu/internal/core/tx"
	"quipu/internal/core/types"
	"quipu/internal/domain"
	"quipu/internal/domain/catalogs/account"
	"quipu/internal/domain/catalogs/product"
	"quipu/internal/domain/journal"
	"quipu/internal/domain/kardex"
	"quipu/internal/domain/posting"
)

// In-memory fakes wiring the full posting path: sale document ->
// kardex exit -> posting generator -> journal.

type fakeSaleRepo struct {
	docs  map[id.ID]*Sale
	lines map[id.ID][]Line
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{docs: make(map[id.ID]*Sale), lines: make(map[id.ID][]Line)}
}

func (r *fakeSaleRepo) Create(_ context.Context, doc *Sale) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, docID id.ID) (*Sale, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("sale", docID.String())
	}
	return doc, nil
}

func (r *fakeSaleRepo) GetByNumber(_ context.Context, number string) (*Sale, error) {
	for _, d := range r.docs {
		if d.Number == number {
			return d, nil
		}
	}
	return nil, apperror.NewNotFound("sale", number)
}

func (r *fakeSaleRepo) Update(_ context.Context, doc *Sale) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeSaleRepo) Delete(_ context.Context, docID id.ID) error {
	delete(r.docs, docID)
	return nil
}

func (r *fakeSaleRepo) GetLines(_ context.Context, docID id.ID) ([]Line, error) {
	return r.lines[docID], nil
}

func (r *fakeSaleRepo) SaveLines(_ context.Context, docID id.ID, lines []Line) error {
	r.lines[docID] = lines
	return nil
}

func (r *fakeSaleRepo) List(_ context.Context, _ ListFilter) (domain.ListResult[*Sale], error) {
	return domain.ListResult[*Sale]{}, nil
}

func (r *fakeSaleRepo) GetForUpdate(ctx context.Context, docID id.ID) (*Sale, error) {
	return r.GetByID(ctx, docID)
}

type fakeProductRepo struct {
	products map[id.ID]*product.Product
}

func (r *fakeProductRepo) Create(_ context.Context, p *product.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

func (r *fakeProductRepo) GetByCode(_ context.Context, code string) (*product.Product, error) {
	return nil, apperror.NewNotFound("product", code)
}

func (r *fakeProductRepo) Update(_ context.Context, p *product.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) SetDeletionMark(_ context.Context, _ id.ID, _ bool) error { return nil }

func (r *fakeProductRepo) List(_ context.Context, _ domain.ListFilter) (domain.ListResult[*product.Product], error) {
	return domain.ListResult[*product.Product]{}, nil
}

func (r *fakeProductRepo) Exists(_ context.Context, productID id.ID) (bool, error) {
	_, ok := r.products[productID]
	return ok, nil
}

func (r *fakeProductRepo) ExistsByCode(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, productID id.ID) (*product.Product, error) {
	return r.GetByID(ctx, productID)
}

func (r *fakeProductRepo) UpdatePosition(_ context.Context, productID id.ID, stock types.Quantity, unitCost types.Money) error {
	p, ok := r.products[productID]
	if !ok {
		return apperror.NewNotFound("product", productID.String())
	}
	p.CurrentStock = stock
	p.CurrentUnitCost = unitCost
	return nil
}

type fakeLedger struct {
	movements []*kardex.Movement
}

func (l *fakeLedger) Create(_ context.Context, movements []*kardex.Movement) error {
	l.movements = append(l.movements, movements...)
	return nil
}

func (l *fakeLedger) ListByProduct(_ context.Context, productID id.ID, period kardex.Period) ([]*kardex.Movement, error) {
	var out []*kardex.Movement
	for _, m := range l.movements {
		if m.ProductID == productID && period.Contains(m.Date) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (l *fakeLedger) ListByRecorder(_ context.Context, recorderID id.ID) ([]*kardex.Movement, error) {
	var out []*kardex.Movement
	for _, m := range l.movements {
		if m.RecorderID == recorderID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeJournalRepo struct {
	entries map[id.ID]*journal.Entry
}

func (r *fakeJournalRepo) Create(_ context.Context, e *journal.Entry) error {
	r.entries[e.ID] = e
	return nil
}

func (r *fakeJournalRepo) GetByID(_ context.Context, entryID id.ID) (*journal.Entry, error) {
	e, ok := r.entries[entryID]
	if !ok {
		return nil, apperror.NewNotFound("journal entry", entryID.String())
	}
	return e, nil
}

func (r *fakeJournalRepo) GetByNumber(_ context.Context, number string) (*journal.Entry, error) {
	return nil, apperror.NewNotFound("journal entry", number)
}

func (r *fakeJournalRepo) UpdateStatus(_ context.Context, e *journal.Entry) error {
	r.entries[e.ID] = e
	return nil
}

func (r *fakeJournalRepo) List(_ context.Context, _ journal.Filter) ([]*journal.Entry, error) {
	var out []*journal.Entry
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeJournalRepo) Count(_ context.Context, _ journal.Filter) (int64, error) {
	return int64(len(r.entries)), nil
}

type fixture struct {
	svc      *Service
	saleRepo *fakeSaleRepo
	products *fakeProductRepo
	ledger   *fakeLedger
	journal  *fakeJournalRepo
}

func newFixture(products ...*product.Product) *fixture {
	productRepo := &fakeProductRepo{products: make(map[id.ID]*product.Product)}
	for _, p := range products {
		productRepo.products[p.ID] = p
	}

	saleRepo := newFakeSaleRepo()
	ledger := &fakeLedger{}
	journalRepo := &fakeJournalRepo{entries: make(map[id.ID]*journal.Entry)}
	txm := tx.NewMockManager()
	gen := &numerator.MockGenerator{}

	kardexSvc := kardex.NewService(productRepo, ledger, txm)
	journalSvc := journal.NewService(journalRepo, gen, txm)

	return &fixture{
		svc:      NewService(saleRepo, kardexSvc, posting.NewGenerator(), journalSvc, gen, txm),
		saleRepo: saleRepo,
		products: productRepo,
		ledger:   ledger,
		journal:  journalRepo,
	}
}

func saleDate() time.Time {
	return time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
}

func TestPostSaleRecordsExitAndSingleEntry(t *testing.T) {
	p := product.New("P-001", "Harina", "KG")
	p.CurrentStock = types.NewQuantityFromInt(20)
	p.CurrentUnitCost = types.MustMoney("150")
	f := newFixture(p)
	ctx := context.Background()

	doc := New("Comercial Sucre")
	doc.Date = saleDate()
	doc.AddLine(p.ID, types.NewQuantityFromInt(5), types.MustMoney("300"))
	if err := f.svc.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.Post(ctx, doc.ID); err != nil {
		t.Fatalf("post: %v", err)
	}

	if p.CurrentStock != types.NewQuantityFromInt(15) {
		t.Errorf("stock = %s, want 15", p.CurrentStock)
	}
	if !p.CurrentUnitCost.Equal(types.MustMoney("150")) {
		t.Errorf("unit cost changed on sale: %s", p.CurrentUnitCost)
	}

	stored := f.saleRepo.docs[doc.ID]
	if !stored.Posted {
		t.Error("document not marked posted")
	}
	if !stored.COGS.Equal(types.MustMoney("750")) {
		t.Errorf("COGS = %s, want 750 (5 x 150)", stored.COGS)
	}

	if len(f.ledger.movements) != 1 {
		t.Fatalf("ledger has %d movements, want 1", len(f.ledger.movements))
	}
	if f.ledger.movements[0].Type != kardex.TypeExit {
		t.Errorf("movement type = %s, want exit", f.ledger.movements[0].Type)
	}

	// One event, one entry covering revenue and cost.
	if len(f.journal.entries) != 1 {
		t.Fatalf("journal has %d entries, want 1", len(f.journal.entries))
	}
	entry := f.journal.entries[*stored.EntryID]
	if entry.Status != journal.StatusPosted {
		t.Errorf("entry status = %s, want posted", entry.Status)
	}
	if err := entry.CheckBalance(); err != nil {
		t.Errorf("entry unbalanced: %v", err)
	}
	if !entry.TotalDebit.Equal(types.MustMoney("2445")) {
		// 1695 receivable (1500 + 195 IVA) + 750 COGS
		t.Errorf("total debit = %s, want 2445", entry.TotalDebit)
	}

	hasCOGS := false
	for _, l := range entry.Lines {
		if l.AccountCode == account.CodeCostoDeVentas && l.Debit.Equal(types.MustMoney("750")) {
			hasCOGS = true
		}
	}
	if !hasCOGS {
		t.Error("entry missing COGS debit of 750")
	}
}

func TestPostSaleInsufficientStockRollsBack(t *testing.T) {
	p := product.New("P-001", "Harina", "KG")
	p.CurrentStock = types.NewQuantityFromInt(3)
	p.CurrentUnitCost = types.MustMoney("150")
	f := newFixture(p)
	ctx := context.Background()

	doc := New("Comercial Sucre")
	doc.Date = saleDate()
	doc.AddLine(p.ID, types.NewQuantityFromInt(5), types.MustMoney("300"))
	if err := f.svc.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := f.svc.Post(ctx, doc.ID)
	if !apperror.IsCode(err, apperror.CodeInsufficientStock) {
		t.Fatalf("err = %v, want INSUFFICIENT_STOCK", err)
	}

	if f.saleRepo.docs[doc.ID].Posted {
		t.Error("document marked posted after failed posting")
	}
	if len(f.journal.entries) != 0 {
		t.Error("journal entry created after failed posting")
	}
}

func TestPostSaleBackorderGoesNegative(t *testing.T) {
	p := product.New("P-001", "Harina", "KG")
	p.CurrentStock = types.NewQuantityFromInt(3)
	p.CurrentUnitCost = types.MustMoney("150")
	f := newFixture(p)
	ctx := context.Background()

	doc := New("Comercial Sucre")
	doc.Date = saleDate()
	doc.AllowBackorder = true
	doc.AddLine(p.ID, types.NewQuantityFromInt(5), types.MustMoney("300"))
	if err := f.svc.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.Post(ctx, doc.ID); err != nil {
		t.Fatalf("post: %v", err)
	}

	if p.CurrentStock != types.NewQuantityFromInt(-2) {
		t.Errorf("stock = %s, want -2", p.CurrentStock)
	}
}

func TestPostSaleTwiceRejected(t *testing.T) {
	p := product.New("P-001", "Harina", "KG")
	p.CurrentStock = types.NewQuantityFromInt(20)
	p.CurrentUnitCost = types.MustMoney("150")
	f := newFixture(p)
	ctx := context.Background()

	doc := New("Comercial Sucre")
	doc.Date = saleDate()
	doc.AddLine(p.ID, types.NewQuantityFromInt(5), types.MustMoney("300"))
	if err := f.svc.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.svc.Post(ctx, doc.ID); err != nil {
		t.Fatalf("first post: %v", err)
	}

	err := f.svc.Post(ctx, doc.ID)
	if !apperror.IsCode(err, apperror.CodeDocumentPosted) {
		t.Errorf("second post err = %v, want DOCUMENT_ALREADY_POSTED", err)
	}
}
