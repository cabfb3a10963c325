package validator

import (
	"time"

	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
)

// Record is a validated, typed entity ready to be upserted.
// Reference fields hold external ids; 0 means no reference.
type Record interface {
	// Kind returns the entity kind of the record
	Kind() pkgsync.EntityKind
	// ExternalKey returns the storefront id the record is keyed on
	ExternalKey() int64
}

// Decimal amounts are kept as their canonical text form and converted to
// NUMERIC by the writer.

// OrderRecord is an order together with the line items that replace any
// previously stored items of the same order.
type OrderRecord struct {
	ID            int64            `json:"id"`
	OrderNumber   string           `json:"order_number"`
	Status        string           `json:"status"`
	Currency      string           `json:"currency,omitempty"`
	SubtotalPrice *string          `json:"subtotal_price,omitempty"`
	TotalTax      *string          `json:"total_tax,omitempty"`
	TotalPrice    string           `json:"total_price"`
	CustomerRef   int64            `json:"customer_ref,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	LineItems     []LineItemRecord `json:"line_items"`
}

// LineItemRecord is one child row of an order
type LineItemRecord struct {
	ID         int64   `json:"id,omitempty"`
	ProductRef int64   `json:"product_ref,omitempty"`
	Title      string  `json:"title,omitempty"`
	SKU        string  `json:"sku,omitempty"`
	Quantity   int32   `json:"quantity"`
	Price      *string `json:"price,omitempty"`
}

// ProductRecord is a catalog product
type ProductRecord struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Vendor      string     `json:"vendor,omitempty"`
	ProductType string     `json:"product_type,omitempty"`
	Status      string     `json:"status,omitempty"`
	Price       *string    `json:"price,omitempty"`
	CategoryRef int64      `json:"category_ref,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// CustomerRecord is a customer. The email never leaves the validator in
// plaintext; only its hash is kept.
type CustomerRecord struct {
	ID          int64      `json:"id"`
	EmailHash   string     `json:"email_hash,omitempty"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	OrdersCount int32      `json:"orders_count"`
	TotalSpent  *string    `json:"total_spent,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// CategoryRecord is a product category with an optional parent
type CategoryRecord struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ParentRef int64  `json:"parent_ref,omitempty"`
}

// Kind implements Record
func (*OrderRecord) Kind() pkgsync.EntityKind { return pkgsync.KindOrders }

// ExternalKey implements Record
func (r *OrderRecord) ExternalKey() int64 { return r.ID }

// Kind implements Record
func (*ProductRecord) Kind() pkgsync.EntityKind { return pkgsync.KindProducts }

// ExternalKey implements Record
func (r *ProductRecord) ExternalKey() int64 { return r.ID }

// Kind implements Record
func (*CustomerRecord) Kind() pkgsync.EntityKind { return pkgsync.KindCustomers }

// ExternalKey implements Record
func (r *CustomerRecord) ExternalKey() int64 { return r.ID }

// Kind implements Record
func (*CategoryRecord) Kind() pkgsync.EntityKind { return pkgsync.KindCategories }

// ExternalKey implements Record
func (r *CategoryRecord) ExternalKey() int64 { return r.ID }
