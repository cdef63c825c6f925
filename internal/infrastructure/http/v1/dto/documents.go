package dto

import (
	"time"

	"quipu/internal/core/id"
	"quipu/internal/core/types"
	"quipu/internal/domain/documents/adjustment"
	"quipu/internal/domain/documents/purchase"
	"quipu/internal/domain/documents/sale"
)

// --- Purchases ---

// PurchaseLineRequest is one product line of a purchase request.
type PurchaseLineRequest struct {
	ProductID string         `json:"productId" binding:"required"`
	Quantity  types.Quantity `json:"quantity" binding:"required"`
	UnitCost  string         `json:"unitCost" binding:"required"`
}

// CreatePurchaseRequest for creating purchases.
type CreatePurchaseRequest struct {
	SupplierName  string                `json:"supplierName" binding:"required"`
	InvoiceNumber string                `json:"invoiceNumber"`
	Date          time.Time             `json:"date" binding:"required"`
	Comment       string                `json:"comment"`
	Lines         []PurchaseLineRequest `json:"lines" binding:"required,min=1"`
}

// ToEntity converts the request to a Purchase.
func (r CreatePurchaseRequest) ToEntity() (*purchase.Purchase, error) {
	doc := purchase.New(r.SupplierName)
	doc.InvoiceNumber = r.InvoiceNumber
	doc.Date = r.Date
	doc.Comment = r.Comment

	for _, l := range r.Lines {
		productID, err := id.Parse(l.ProductID)
		if err != nil {
			return nil, err
		}
		unitCost, err := types.NewMoneyFromString(l.UnitCost)
		if err != nil {
			return nil, err
		}
		doc.AddLine(productID, l.Quantity, unitCost)
	}

	return doc, nil
}

// UpdatePurchaseRequest for updating unposted purchases. Lines replace the
// existing set; Version carries the optimistic lock.
type UpdatePurchaseRequest struct {
	SupplierName  *string               `json:"supplierName"`
	InvoiceNumber *string               `json:"invoiceNumber"`
	Date          *time.Time            `json:"date"`
	Comment       *string               `json:"comment"`
	Lines         []PurchaseLineRequest `json:"lines"`
	Version       int                   `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields onto an existing document.
func (r UpdatePurchaseRequest) ApplyTo(doc *purchase.Purchase) error {
	if r.SupplierName != nil {
		doc.SupplierName = *r.SupplierName
	}
	if r.InvoiceNumber != nil {
		doc.InvoiceNumber = *r.InvoiceNumber
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	if r.Lines != nil {
		doc.Lines = doc.Lines[:0]
		for _, l := range r.Lines {
			productID, err := id.Parse(l.ProductID)
			if err != nil {
				return err
			}
			unitCost, err := types.NewMoneyFromString(l.UnitCost)
			if err != nil {
				return err
			}
			doc.AddLine(productID, l.Quantity, unitCost)
		}
	}
	doc.Version = r.Version
	return nil
}

// PurchaseLineResponse is one product line of a purchase.
type PurchaseLineResponse struct {
	LineNo    int    `json:"lineNo"`
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
	UnitCost  string `json:"unitCost"`
	Amount    string `json:"amount"`
}

// PurchaseResponse contains purchase document fields.
type PurchaseResponse struct {
	ID            string                 `json:"id"`
	Number        string                 `json:"number"`
	Date          time.Time              `json:"date"`
	SupplierName  string                 `json:"supplierName"`
	InvoiceNumber string                 `json:"invoiceNumber,omitempty"`
	Subtotal      string                 `json:"subtotal"`
	Tax           string                 `json:"tax"`
	Total         string                 `json:"total"`
	Posted        bool                   `json:"posted"`
	EntryID       *string                `json:"entryId,omitempty"`
	Comment       string                 `json:"comment,omitempty"`
	Version       int                    `json:"version"`
	Lines         []PurchaseLineResponse `json:"lines"`
}

// FromPurchase creates PurchaseResponse from a document.
func FromPurchase(doc *purchase.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		ID:            doc.ID.String(),
		Number:        doc.Number,
		Date:          doc.Date,
		SupplierName:  doc.SupplierName,
		InvoiceNumber: doc.InvoiceNumber,
		Subtotal:      doc.Subtotal.StringFixed(2),
		Tax:           doc.Tax.StringFixed(2),
		Total:         doc.Total.StringFixed(2),
		Posted:        doc.Posted,
		Comment:       doc.Comment,
		Version:       doc.Version,
		Lines:         make([]PurchaseLineResponse, 0, len(doc.Lines)),
	}
	if doc.EntryID != nil {
		s := doc.EntryID.String()
		resp.EntryID = &s
	}
	for _, l := range doc.Lines {
		resp.Lines = append(resp.Lines, PurchaseLineResponse{
			LineNo:    l.LineNo,
			ProductID: l.ProductID.String(),
			Quantity:  l.Quantity.String(),
			UnitCost:  l.UnitCost.StringFixed(2),
			Amount:    l.Amount.StringFixed(2),
		})
	}
	return resp
}

// --- Sales ---

// SaleLineRequest is one product line of a sale request.
type SaleLineRequest struct {
	ProductID string         `json:"productId" binding:"required"`
	Quantity  types.Quantity `json:"quantity" binding:"required"`
	UnitPrice string         `json:"unitPrice" binding:"required"`
}

// CreateSaleRequest for creating sales.
type CreateSaleRequest struct {
	CustomerName   string            `json:"customerName" binding:"required"`
	Date           time.Time         `json:"date" binding:"required"`
	AllowBackorder bool              `json:"allowBackorder"`
	Comment        string            `json:"comment"`
	Lines          []SaleLineRequest `json:"lines" binding:"required,min=1"`
}

// ToEntity converts the request to a Sale.
func (r CreateSaleRequest) ToEntity() (*sale.Sale, error) {
	doc := sale.New(r.CustomerName)
	doc.Date = r.Date
	doc.AllowBackorder = r.AllowBackorder
	doc.Comment = r.Comment

	for _, l := range r.Lines {
		productID, err := id.Parse(l.ProductID)
		if err != nil {
			return nil, err
		}
		unitPrice, err := types.NewMoneyFromString(l.UnitPrice)
		if err != nil {
			return nil, err
		}
		doc.AddLine(productID, l.Quantity, unitPrice)
	}

	return doc, nil
}

// UpdateSaleRequest for updating unposted sales. Lines replace the existing
// set; Version carries the optimistic lock.
type UpdateSaleRequest struct {
	CustomerName   *string           `json:"customerName"`
	Date           *time.Time        `json:"date"`
	AllowBackorder *bool             `json:"allowBackorder"`
	Comment        *string           `json:"comment"`
	Lines          []SaleLineRequest `json:"lines"`
	Version        int               `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields onto an existing document.
func (r UpdateSaleRequest) ApplyTo(doc *sale.Sale) error {
	if r.CustomerName != nil {
		doc.CustomerName = *r.CustomerName
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.AllowBackorder != nil {
		doc.AllowBackorder = *r.AllowBackorder
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	if r.Lines != nil {
		doc.Lines = doc.Lines[:0]
		for _, l := range r.Lines {
			productID, err := id.Parse(l.ProductID)
			if err != nil {
				return err
			}
			unitPrice, err := types.NewMoneyFromString(l.UnitPrice)
			if err != nil {
				return err
			}
			doc.AddLine(productID, l.Quantity, unitPrice)
		}
	}
	doc.Version = r.Version
	return nil
}

// SaleLineResponse is one product line of a sale.
type SaleLineResponse struct {
	LineNo    int    `json:"lineNo"`
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Amount    string `json:"amount"`
}

// SaleResponse contains sale document fields.
type SaleResponse struct {
	ID             string             `json:"id"`
	Number         string             `json:"number"`
	Date           time.Time          `json:"date"`
	CustomerName   string             `json:"customerName"`
	AllowBackorder bool               `json:"allowBackorder"`
	Net            string             `json:"net"`
	Tax            string             `json:"tax"`
	Total          string             `json:"total"`
	COGS           string             `json:"cogs"`
	Posted         bool               `json:"posted"`
	EntryID        *string            `json:"entryId,omitempty"`
	Comment        string             `json:"comment,omitempty"`
	Version        int                `json:"version"`
	Lines          []SaleLineResponse `json:"lines"`
}

// FromSale creates SaleResponse from a document.
func FromSale(doc *sale.Sale) SaleResponse {
	resp := SaleResponse{
		ID:             doc.ID.String(),
		Number:         doc.Number,
		Date:           doc.Date,
		CustomerName:   doc.CustomerName,
		AllowBackorder: doc.AllowBackorder,
		Net:            doc.Net.StringFixed(2),
		Tax:            doc.Tax.StringFixed(2),
		Total:          doc.Total.StringFixed(2),
		COGS:           doc.COGS.StringFixed(2),
		Posted:         doc.Posted,
		Comment:        doc.Comment,
		Version:        doc.Version,
		Lines:          make([]SaleLineResponse, 0, len(doc.Lines)),
	}
	if doc.EntryID != nil {
		s := doc.EntryID.String()
		resp.EntryID = &s
	}
	for _, l := range doc.Lines {
		resp.Lines = append(resp.Lines, SaleLineResponse{
			LineNo:    l.LineNo,
			ProductID: l.ProductID.String(),
			Quantity:  l.Quantity.String(),
			UnitPrice: l.UnitPrice.StringFixed(2),
			Amount:    l.Amount.StringFixed(2),
		})
	}
	return resp
}

// --- Adjustments ---

// AdjustmentLineRequest is one product line of an adjustment request.
// UnitCost is required for initial-load lines and must be absent on
// correction lines.
type AdjustmentLineRequest struct {
	ProductID string         `json:"productId" binding:"required"`
	Quantity  types.Quantity `json:"quantity" binding:"required"`
	UnitCost  string         `json:"unitCost"`
}

// CreateAdjustmentRequest for creating adjustments.
type CreateAdjustmentRequest struct {
	Kind      string                  `json:"kind" binding:"omitempty,oneof=correction initial_load"`
	Direction string                  `json:"direction" binding:"required,oneof=entry exit"`
	Reason    string                  `json:"reason" binding:"required"`
	Date      time.Time               `json:"date" binding:"required"`
	Comment   string                  `json:"comment"`
	Lines     []AdjustmentLineRequest `json:"lines" binding:"required,min=1"`
}

// ToEntity converts the request to an Adjustment.
func (r CreateAdjustmentRequest) ToEntity() (*adjustment.Adjustment, error) {
	doc := adjustment.New(adjustment.Direction(r.Direction), r.Reason)
	if r.Kind != "" {
		doc.Kind = adjustment.Kind(r.Kind)
	}
	doc.Date = r.Date
	doc.Comment = r.Comment

	for _, l := range r.Lines {
		productID, err := id.Parse(l.ProductID)
		if err != nil {
			return nil, err
		}
		if l.UnitCost == "" {
			doc.AddLine(productID, l.Quantity)
			continue
		}
		unitCost, err := types.NewMoneyFromString(l.UnitCost)
		if err != nil {
			return nil, err
		}
		doc.AddLineAtCost(productID, l.Quantity, unitCost)
	}

	return doc, nil
}

// AdjustmentLineResponse is one product line of an adjustment.
type AdjustmentLineResponse struct {
	LineNo    int    `json:"lineNo"`
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
	UnitCost  string `json:"unitCost,omitempty"`
}

// AdjustmentResponse contains adjustment document fields.
type AdjustmentResponse struct {
	ID        string                   `json:"id"`
	Number    string                   `json:"number"`
	Date      time.Time                `json:"date"`
	Kind      string                   `json:"kind"`
	Direction string                   `json:"direction"`
	Reason    string                   `json:"reason"`
	Value     string                   `json:"value"`
	Posted    bool                     `json:"posted"`
	EntryID   *string                  `json:"entryId,omitempty"`
	Comment   string                   `json:"comment,omitempty"`
	Version   int                      `json:"version"`
	Lines     []AdjustmentLineResponse `json:"lines"`
}

// FromAdjustment creates AdjustmentResponse from a document.
func FromAdjustment(doc *adjustment.Adjustment) AdjustmentResponse {
	resp := AdjustmentResponse{
		ID:        doc.ID.String(),
		Number:    doc.Number,
		Date:      doc.Date,
		Kind:      string(doc.Kind),
		Direction: string(doc.Direction),
		Reason:    doc.Reason,
		Value:     doc.Value.StringFixed(2),
		Posted:    doc.Posted,
		Comment:   doc.Comment,
		Version:   doc.Version,
		Lines:     make([]AdjustmentLineResponse, 0, len(doc.Lines)),
	}
	if doc.EntryID != nil {
		s := doc.EntryID.String()
		resp.EntryID = &s
	}
	for _, l := range doc.Lines {
		line := AdjustmentLineResponse{
			LineNo:    l.LineNo,
			ProductID: l.ProductID.String(),
			Quantity:  l.Quantity.String(),
		}
		if l.UnitCost.IsPositive() {
			line.UnitCost = l.UnitCost.StringFixed(4)
		}
		resp.Lines = append(resp.Lines, line)
	}
	return resp
}
