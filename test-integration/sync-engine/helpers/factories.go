// Package helpers builds storefront batches and manipulates sync logs for the
// integration tests.
package helpers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// LineItem is a storefront order line
type LineItem struct {
	ID        int64  `json:"id,omitempty"`
	ProductID int64  `json:"product_id,omitempty"`
	Title     string `json:"title"`
	SKU       string `json:"sku,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// Order is a storefront order. Empty fields are omitted so invalid orders can
// be built by leaving a required field blank.
type Order struct {
	ID         int64      `json:"id"`
	CreatedAt  string     `json:"created_at,omitempty"`
	Status     string     `json:"status,omitempty"`
	Currency   string     `json:"currency,omitempty"`
	TotalPrice string     `json:"total_price,omitempty"`
	CustomerID int64      `json:"customer_id,omitempty"`
	LineItems  []LineItem `json:"line_items,omitempty"`
}

// Product is a storefront product
type Product struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Vendor     string `json:"vendor,omitempty"`
	Price      string `json:"price,omitempty"`
	CategoryID int64  `json:"category_id"`
}

// Customer is a storefront customer
type Customer struct {
	ID         int64  `json:"id"`
	Email      string `json:"email,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	TotalSpent string `json:"total_spent,omitempty"`
}

// Category is a storefront category
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID int64  `json:"parent_id,omitempty"`
}

// UniqueStoreName returns a store name that does not collide across specs
func UniqueStoreName(prefix string) string {
	return fmt.Sprintf("%s-store-%d", prefix, time.Now().UnixNano())
}

// CreateCatalogCategories returns a root category and a child listed before it,
// so the parent can only be linked after the whole batch is written
func CreateCatalogCategories() []Category {
	return []Category{
		{ID: 11, Name: "Mugs", ParentID: 10},
		{ID: 10, Name: "Kitchen"},
	}
}

// CreateCatalogProducts returns two categorized products and one without a category
func CreateCatalogProducts() []Product {
	return []Product{
		{ID: 501, Title: "Stoneware mug", Vendor: "Acme", Price: "12.50", CategoryID: 11},
		{ID: 502, Title: "Tea towel", Vendor: "Acme", Price: "6.00", CategoryID: 10},
		{ID: 503, Title: "Gift card", Price: "25.00", CategoryID: 0},
	}
}

// CreateCustomers returns two customers
func CreateCustomers() []Customer {
	return []Customer{
		{ID: 9001, Email: "Ada@Example.com ", FirstName: "Ada", TotalSpent: "37.50"},
		{ID: 9002, Email: "grace@example.com", FirstName: "Grace"},
	}
}

// CreateOrders returns two valid orders and one without a status
func CreateOrders() []Order {
	return []Order{
		{
			ID: 7001, CreatedAt: "2026-05-02T09:30:00Z", Status: "paid", Currency: "EUR",
			TotalPrice: "31.00", CustomerID: 9001,
			LineItems: []LineItem{
				{ID: 1, ProductID: 501, Title: "Stoneware mug", Quantity: 2, Price: "12.50"},
				{ID: 2, ProductID: 502, Title: "Tea towel", Quantity: 1, Price: "6.00"},
			},
		},
		{
			ID: 7002, CreatedAt: "2026-05-03", Status: "pending", TotalPrice: "25.00",
			LineItems: []LineItem{
				{ID: 3, ProductID: 999, Title: "Discontinued", Quantity: 1, Price: "25.00"},
			},
		},
		{ID: 7003, CreatedAt: "2026-05-04", TotalPrice: "1.00"},
	}
}

// MarshalBatch encodes records as the JSON array the writer accepts
func MarshalBatch(records any) json.RawMessage {
	data, err := json.Marshal(records)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal batch: %v", err))
	}
	return data
}

// WriteBatchFile writes records where a file batch source rooted at dir looks
// for the batch of kind for storeID, and returns the file path
func WriteBatchFile(dir string, storeID uuid.UUID, kind string, records any) (string, error) {
	storeDir := filepath.Join(dir, storeID.String())
	if err := os.MkdirAll(storeDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create store directory: %w", err)
	}
	path := filepath.Join(storeDir, kind+".json")
	if err := os.WriteFile(path, MarshalBatch(records), 0600); err != nil {
		return "", fmt.Errorf("failed to write batch file: %w", err)
	}
	return path, nil
}
