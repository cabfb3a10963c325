// Package resolver maps the external ids a batch references to internal row ids,
// issuing at most one lookup per referenced table.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/stacklok/commerce-sync/internal/db/sqlc"
	"github.com/stacklok/commerce-sync/internal/sync/validator"
)

// Querier is the subset of the generated queries the resolver needs.
// Both *sqlc.Queries and its transactional copy satisfy it.
type Querier interface {
	LookupCustomerIDs(ctx context.Context, arg sqlc.LookupCustomerIDsParams) ([]sqlc.LookupCustomerIDsRow, error)
	LookupProductIDs(ctx context.Context, arg sqlc.LookupProductIDsParams) ([]sqlc.LookupProductIDsRow, error)
	LookupCategoryIDs(ctx context.Context, arg sqlc.LookupCategoryIDsParams) ([]sqlc.LookupCategoryIDsRow, error)
}

// References holds the distinct, non-sentinel external ids a batch refers to,
// grouped by referenced table and sorted ascending.
type References struct {
	Customers  []int64
	Products   []int64
	Categories []int64
}

// Empty reports whether the batch references nothing
func (r References) Empty() bool {
	return len(r.Customers) == 0 && len(r.Products) == 0 && len(r.Categories) == 0
}

// CollectReferences gathers the references of every record in the batch.
// Sentinel references (0) are never collected.
func CollectReferences(records []validator.Record) References {
	customers := map[int64]struct{}{}
	products := map[int64]struct{}{}
	categories := map[int64]struct{}{}

	add := func(set map[int64]struct{}, ref int64) {
		if ref > 0 {
			set[ref] = struct{}{}
		}
	}

	for _, record := range records {
		switch r := record.(type) {
		case *validator.OrderRecord:
			add(customers, r.CustomerRef)
			for _, item := range r.LineItems {
				add(products, item.ProductRef)
			}
		case *validator.ProductRecord:
			add(categories, r.CategoryRef)
		case *validator.CategoryRecord:
			add(categories, r.ParentRef)
		}
	}

	return References{
		Customers:  sortedKeys(customers),
		Products:   sortedKeys(products),
		Categories: sortedKeys(categories),
	}
}

// Maps resolves external references to internal ids.
// A sentinel or unknown reference resolves to nil.
type Maps struct {
	customers  map[int64]uuid.UUID
	products   map[int64]uuid.UUID
	categories map[int64]uuid.UUID
}

// Customer returns the internal id of customer ext
func (m Maps) Customer(ext int64) *uuid.UUID { return lookup(m.customers, ext) }

// Product returns the internal id of product ext
func (m Maps) Product(ext int64) *uuid.UUID { return lookup(m.products, ext) }

// Category returns the internal id of category ext
func (m Maps) Category(ext int64) *uuid.UUID { return lookup(m.categories, ext) }

// AddCategory records a category id learned after the lookup ran, such as a
// category upserted earlier in the same batch.
func (m *Maps) AddCategory(ext int64, id uuid.UUID) {
	if m.categories == nil {
		m.categories = map[int64]uuid.UUID{}
	}
	m.categories[ext] = id
}

func lookup(m map[int64]uuid.UUID, ext int64) *uuid.UUID {
	if ext <= 0 {
		return nil
	}
	id, ok := m[ext]
	if !ok {
		return nil
	}
	return &id
}

// Resolve looks up refs for storeID. A table that is not referenced is not
// queried. References to rows that do not exist are left unresolved.
func Resolve(ctx context.Context, q Querier, storeID uuid.UUID, refs References) (Maps, error) {
	maps := Maps{
		customers:  map[int64]uuid.UUID{},
		products:   map[int64]uuid.UUID{},
		categories: map[int64]uuid.UUID{},
	}

	if len(refs.Customers) > 0 {
		rows, err := q.LookupCustomerIDs(ctx, sqlc.LookupCustomerIDsParams{StoreID: storeID, ExternalIds: refs.Customers})
		if err != nil {
			return Maps{}, fmt.Errorf("failed to resolve customer references: %w", err)
		}
		for _, row := range rows {
			maps.customers[row.ExternalID] = row.ID
		}
	}

	if len(refs.Products) > 0 {
		rows, err := q.LookupProductIDs(ctx, sqlc.LookupProductIDsParams{StoreID: storeID, ExternalIds: refs.Products})
		if err != nil {
			return Maps{}, fmt.Errorf("failed to resolve product references: %w", err)
		}
		for _, row := range rows {
			maps.products[row.ExternalID] = row.ID
		}
	}

	if len(refs.Categories) > 0 {
		rows, err := q.LookupCategoryIDs(ctx, sqlc.LookupCategoryIDsParams{StoreID: storeID, ExternalIds: refs.Categories})
		if err != nil {
			return Maps{}, fmt.Errorf("failed to resolve category references: %w", err)
		}
		for _, row := range rows {
			maps.categories[row.ExternalID] = row.ID
		}
	}

	slog.DebugContext(ctx, "Resolved batch references",
		"store_id", storeID,
		"customers", fmt.Sprintf("%d/%d", len(maps.customers), len(refs.Customers)),
		"products", fmt.Sprintf("%d/%d", len(maps.products), len(refs.Products)),
		"categories", fmt.Sprintf("%d/%d", len(maps.categories), len(refs.Categories)))

	return maps, nil
}

func sortedKeys(set map[int64]struct{}) []int64 {
	if len(set) == 0 {
		return nil
	}
	keys := make([]int64, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
