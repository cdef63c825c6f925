package adjustment

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

// In-memory fakes wiring the full posting path: adjustment document ->
// kardex movement -> posting generator -> journal.

type fakeAdjustmentRepo struct {
	docs  map[id.ID]*Adjustment
	lines map[id.ID][]Line
}

func newFakeAdjustmentRepo() *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{docs: make(map[id.ID]*Adjustment), lines: make(map[id.ID][]Line)}
}

func (r *fakeAdjustmentRepo) Create(_ context.Context, doc *Adjustment) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeAdjustmentRepo) GetByID(_ context.Context, docID id.ID) (*Adjustment, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("adjustment", docID.String())
	}
	return doc, nil
}

func (r *fakeAdjustmentRepo) Update(_ context.Context, doc *Adjustment) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeAdjustmentRepo) Delete(_ context.Context, docID id.ID) error {
	delete(r.docs, docID)
	return nil
}

func (r *fakeAdjustmentRepo) GetLines(_ context.Context, docID id.ID) ([]Line, error) {
	return r.lines[docID], nil
}

func (r *fakeAdjustmentRepo) SaveLines(_ context.Context, docID id.ID, lines []Line) error {
	r.lines[docID] = lines
	return nil
}

func (r *fakeAdjustmentRepo) List(_ context.Context, _ ListFilter) (domain.ListResult[*Adjustment], error) {
	return domain.ListResult[*Adjustment]{}, nil
}

func (r *fakeAdjustmentRepo) GetForUpdate(ctx context.Context, docID id.ID) (*Adjustment, error) {
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
	repo     *fakeAdjustmentRepo
	products *fakeProductRepo
	ledger   *fakeLedger
	journal  *fakeJournalRepo
}

func newFixture(products ...*product.Product) *fixture {
	productRepo := &fakeProductRepo{products: make(map[id.ID]*product.Product)}
	for _, p := range products {
		productRepo.products[p.ID] = p
	}

	repo := newFakeAdjustmentRepo()
	ledger := &fakeLedger{}
	journalRepo := &fakeJournalRepo{entries: make(map[id.ID]*journal.Entry)}
	txm := tx.NewMockManager()
	gen := &numerator.MockGenerator{}

	kardexSvc := kardex.NewService(productRepo, ledger, txm)
	journalSvc := journal.NewService(journalRepo, gen, txm)

	return &fixture{
		svc:      NewService(repo, kardexSvc, posting.NewGenerator(), journalSvc, gen, txm),
		repo:     repo,
		products: productRepo,
		ledger:   ledger,
		journal:  journalRepo,
	}
}

func adjustmentDate() time.Time {
	return time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
}

func TestPostInitialLoadOnNewProduct(t *testing.T) {
	p := product.New("P-001", "Harina", "KG")
	f := newFixture(p)
	ctx := context.Background()

	doc := NewInitialLoad("Inventario de apertura")
	doc.Date = adjustmentDate()
	doc.AddLineAtCost(p.ID, types.NewQuantityFromInt(10), types.MustMoney("120"))
	if err := f.svc.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.Post(ctx, doc.ID); err != nil {
		t.Fatalf("post: %v", err)
	}

	if p.CurrentStock != types.NewQuantityFromInt(10) {
		t.Errorf("stock = %s, want 10", p.CurrentStock)
	}
	if !p.CurrentUnitCost.Equal(types.MustMoney("120")) {
		t.Errorf("unit cost = %s, want the stated 120", p.CurrentUnitCost)
	}

	stored := f.repo.docs[doc.ID]
	if !stored.Posted {
		t.Error("document not marked posted")
	}
	if !stored.Value.Equal(types.MustMoney("1200")) {
		t.Errorf("value = %s, want 1200 (10 x 120)", stored.Value)
	}

	if len(f.ledger.movements) != 1 {
		t.Fatalf("ledger has %d movements, want 1", len(f.ledger.movements))
	}
	m := f.ledger.movements[0]
	if m.ReasonCode != kardex.ReasonInitialStock {
		t.Errorf("reason = %s, want %s", m.ReasonCode, kardex.ReasonInitialStock)
	}
	if !m.UnitCost.Equal(types.MustMoney("120")) {
		t.Errorf("movement unit cost = %s, want 120", m.UnitCost)
	}

	// The load posts inventory against equity, not against a supplier.
	entry := f.journal.entries[*stored.EntryID]
	if entry.Status != journal.StatusPosted {
		t.Errorf("entry status = %s, want posted", entry.Status)
	}
	var inv, capital types.Money
	for _, l := range entry.Lines {
		switch l.AccountCode {
		case account.CodeInventarios:
			inv = l.Debit
		case account.CodeCapital:
			capital = l.Credit
		case account.CodeCuentasPorPagar:
			t.Error("initial load credited accounts payable")
		}
	}
	if !inv.Equal(types.MustMoney("1200")) {
		t.Errorf("inventory debit = %s, want 1200", inv)
	}
	if !capital.Equal(types.MustMoney("1200")) {
		t.Errorf("capital credit = %s, want 1200", capital)
	}
}

func TestPostCorrectionEntryUsesCurrentCost(t *testing.T) {
	p := product.New("P-001", "Harina", "KG")
	p.CurrentStock = types.NewQuantityFromInt(8)
	p.CurrentUnitCost = types.MustMoney("150")
	f := newFixture(p)
	ctx := context.Background()

	doc := New(DirectionEntry, "Mercaderia encontrada")
	doc.Date = adjustmentDate()
	doc.AddLine(p.ID, types.NewQuantityFromInt(2))
	if err := f.svc.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.Post(ctx, doc.ID); err != nil {
		t.Fatalf("post: %v", err)
	}

	if p.CurrentStock != types.NewQuantityFromInt(10) {
		t.Errorf("stock = %s, want 10", p.CurrentStock)
	}
	if !f.repo.docs[doc.ID].Value.Equal(types.MustMoney("300")) {
		t.Errorf("value = %s, want 300 (2 x 150)", f.repo.docs[doc.ID].Value)
	}

	entry := f.journal.entries[*f.repo.docs[doc.ID].EntryID]
	hasGain := false
	for _, l := range entry.Lines {
		if l.AccountCode == account.CodeAjusteGanancia && l.Credit.Equal(types.MustMoney("300")) {
			hasGain = true
		}
	}
	if !hasGain {
		t.Error("correction entry missing gain credit of 300")
	}
}

func TestPostCorrectionEntryOnNewProductRejected(t *testing.T) {
	// A correction values at the current average, which is zero for a
	// product that never moved. Opening stock goes through an initial load.
	p := product.New("P-001", "Harina", "KG")
	f := newFixture(p)
	ctx := context.Background()

	doc := New(DirectionEntry, "Conteo inicial")
	doc.Date = adjustmentDate()
	doc.AddLine(p.ID, types.NewQuantityFromInt(10))
	if err := f.svc.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := f.svc.Post(ctx, doc.ID)
	if !apperror.IsCode(err, apperror.CodeUnbalanceable) {
		t.Fatalf("err = %v, want UNBALANCEABLE_EVENT", err)
	}
	if len(f.journal.entries) != 0 {
		t.Error("journal entry created for a zero-value correction")
	}
}

func TestValidateInitialLoadRequiresStatedCost(t *testing.T) {
	doc := NewInitialLoad("Inventario de apertura")
	doc.Date = adjustmentDate()
	doc.AddLine(id.New(), types.NewQuantityFromInt(5))

	err := doc.Validate(context.Background())
	if !apperror.IsCode(err, apperror.CodeValidation) {
		t.Errorf("err = %v, want VALIDATION_ERROR", err)
	}
}

func TestValidateCorrectionRejectsStatedCost(t *testing.T) {
	doc := New(DirectionEntry, "Mercaderia encontrada")
	doc.Date = adjustmentDate()
	doc.AddLineAtCost(id.New(), types.NewQuantityFromInt(5), types.MustMoney("80"))

	err := doc.Validate(context.Background())
	if !apperror.IsCode(err, apperror.CodeValidation) {
		t.Errorf("err = %v, want VALIDATION_ERROR", err)
	}
}

func TestValidateInitialLoadMustBeEntry(t *testing.T) {
	doc := NewInitialLoad("Inventario de apertura")
	doc.Date = adjustmentDate()
	doc.Direction = DirectionExit
	doc.AddLineAtCost(id.New(), types.NewQuantityFromInt(5), types.MustMoney("80"))

	err := doc.Validate(context.Background())
	if !apperror.IsCode(err, apperror.CodeValidation) {
		t.Errorf("err = %v, want VALIDATION_ERROR", err)
	}
}
