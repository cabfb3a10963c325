package writer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stacklok/commerce-sync/internal/db/sqlc"
	"github.com/stacklok/commerce-sync/internal/sync/resolver"
	"github.com/stacklok/commerce-sync/internal/sync/validator"
)

func upsertOrders(
	ctx context.Context,
	querier *sqlc.Queries,
	storeID uuid.UUID,
	records []validator.Record,
	maps resolver.Maps,
) (int, error) {
	synced := 0
	for _, record := range records {
		order, ok := record.(*validator.OrderRecord)
		if !ok {
			return 0, fmt.Errorf("unexpected %T in order batch", record)
		}

		params, err := orderParams(storeID, order, maps)
		if err != nil {
			return 0, fmt.Errorf("order %d: %w", order.ID, err)
		}
		orderID, err := querier.UpsertOrder(ctx, params)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert order %d: %w", order.ID, err)
		}

		if err := replaceLineItems(ctx, querier, storeID, orderID, order, maps); err != nil {
			return 0, err
		}
		synced++
	}
	return synced, nil
}

func orderParams(storeID uuid.UUID, order *validator.OrderRecord, maps resolver.Maps) (sqlc.UpsertOrderParams, error) {
	total, err := numeric(order.TotalPrice)
	if err != nil {
		return sqlc.UpsertOrderParams{}, fmt.Errorf("total_price: %w", err)
	}
	subtotal, err := nullableNumeric(order.SubtotalPrice)
	if err != nil {
		return sqlc.UpsertOrderParams{}, fmt.Errorf("subtotal_price: %w", err)
	}
	tax, err := nullableNumeric(order.TotalTax)
	if err != nil {
		return sqlc.UpsertOrderParams{}, fmt.Errorf("total_tax: %w", err)
	}

	return sqlc.UpsertOrderParams{
		StoreID:         storeID,
		ExternalOrderID: order.ID,
		OrderNumber:     nullableText(order.OrderNumber),
		Status:          order.Status,
		Currency:        nullableText(order.Currency),
		SubtotalPrice:   subtotal,
		TotalTax:        tax,
		TotalPrice:      total,
		CustomerID:      nullableUUID(maps.Customer(order.CustomerRef)),
		OrderedAt:       order.CreatedAt,
	}, nil
}

// replaceLineItems makes the stored items of an order match the payload exactly
func replaceLineItems(
	ctx context.Context,
	querier *sqlc.Queries,
	storeID, orderID uuid.UUID,
	order *validator.OrderRecord,
	maps resolver.Maps,
) error {
	if _, err := querier.DeleteOrderItems(ctx, sqlc.DeleteOrderItemsParams{
		StoreID: storeID,
		OrderID: orderID,
	}); err != nil {
		return fmt.Errorf("failed to delete line items of order %d: %w", order.ID, err)
	}

	if len(order.LineItems) == 0 {
		return nil
	}

	rows := make([]sqlc.InsertOrderItemsParams, 0, len(order.LineItems))
	for i, item := range order.LineItems {
		unitPrice := "0"
		if item.Price != nil {
			unitPrice = *item.Price
		}
		price, err := numeric(unitPrice)
		if err != nil {
			return fmt.Errorf("order %d line item %d: %w", order.ID, i, err)
		}
		rows = append(rows, sqlc.InsertOrderItemsParams{
			StoreID:    storeID,
			OrderID:    orderID,
			ExternalID: nullableInt8(item.ID),
			ProductID:  nullableUUID(maps.Product(item.ProductRef)),
			Title:      item.Title,
			Sku:        nullableText(item.SKU),
			Quantity:   item.Quantity,
			Price:      price,
		})
	}

	copied, err := querier.InsertOrderItems(ctx, rows)
	if err != nil {
		return fmt.Errorf("failed to insert line items of order %d: %w", order.ID, err)
	}
	if int(copied) != len(rows) {
		return fmt.Errorf("line item copy count mismatch for order %d: expected %d, got %d", order.ID, len(rows), copied)
	}
	return nil
}

func upsertProducts(
	ctx context.Context,
	querier *sqlc.Queries,
	storeID uuid.UUID,
	records []validator.Record,
	maps resolver.Maps,
) (int, error) {
	synced := 0
	for _, record := range records {
		product, ok := record.(*validator.ProductRecord)
		if !ok {
			return 0, fmt.Errorf("unexpected %T in product batch", record)
		}
		price, err := nullableNumeric(product.Price)
		if err != nil {
			return 0, fmt.Errorf("product %d price: %w", product.ID, err)
		}
		if _, err := querier.UpsertProduct(ctx, sqlc.UpsertProductParams{
			StoreID:           storeID,
			ExternalID:        product.ID,
			Title:             product.Title,
			Vendor:            nullableText(product.Vendor),
			ProductType:       nullableText(product.ProductType),
			Status:            nullableText(product.Status),
			Price:             price,
			CategoryID:        nullableUUID(maps.Category(product.CategoryRef)),
			ExternalCreatedAt: nullableTimestamptz(product.CreatedAt),
		}); err != nil {
			return 0, fmt.Errorf("failed to upsert product %d: %w", product.ID, err)
		}
		synced++
	}
	return synced, nil
}

func upsertCustomers(
	ctx context.Context,
	querier *sqlc.Queries,
	storeID uuid.UUID,
	records []validator.Record,
) (int, error) {
	synced := 0
	for _, record := range records {
		customer, ok := record.(*validator.CustomerRecord)
		if !ok {
			return 0, fmt.Errorf("unexpected %T in customer batch", record)
		}
		spent := "0"
		if customer.TotalSpent != nil {
			spent = *customer.TotalSpent
		}
		totalSpent, err := numeric(spent)
		if err != nil {
			return 0, fmt.Errorf("customer %d total_spent: %w", customer.ID, err)
		}
		if _, err := querier.UpsertCustomer(ctx, sqlc.UpsertCustomerParams{
			StoreID:           storeID,
			ExternalID:        customer.ID,
			EmailHash:         nullableText(customer.EmailHash),
			FirstName:         nullableText(customer.FirstName),
			LastName:          nullableText(customer.LastName),
			OrdersCount:       customer.OrdersCount,
			TotalSpent:        totalSpent,
			ExternalCreatedAt: nullableTimestamptz(customer.CreatedAt),
		}); err != nil {
			return 0, fmt.Errorf("failed to upsert customer %d: %w", customer.ID, err)
		}
		synced++
	}
	return synced, nil
}

// upsertCategories writes every category, then links parents that were only
// created by this batch and so could not be resolved up front.
func upsertCategories(
	ctx context.Context,
	querier *sqlc.Queries,
	storeID uuid.UUID,
	records []validator.Record,
	maps *resolver.Maps,
) (int, error) {
	type pendingParent struct {
		id        uuid.UUID
		externID  int64
		parentRef int64
	}

	var pending []pendingParent
	synced := 0
	for _, record := range records {
		category, ok := record.(*validator.CategoryRecord)
		if !ok {
			return 0, fmt.Errorf("unexpected %T in category batch", record)
		}

		parentRef := category.ParentRef
		if parentRef == category.ID {
			parentRef = 0
		}
		parentID := maps.Category(parentRef)

		id, err := querier.UpsertCategory(ctx, sqlc.UpsertCategoryParams{
			StoreID:    storeID,
			ExternalID: category.ID,
			Name:       category.Name,
			ParentID:   nullableUUID(parentID),
		})
		if err != nil {
			return 0, fmt.Errorf("failed to upsert category %d: %w", category.ID, err)
		}
		maps.AddCategory(category.ID, id)

		if parentRef != 0 && parentID == nil {
			pending = append(pending, pendingParent{id: id, externID: category.ID, parentRef: parentRef})
		}
		synced++
	}

	for _, p := range pending {
		parentID := maps.Category(p.parentRef)
		if parentID == nil {
			continue
		}
		if err := querier.SetCategoryParent(ctx, sqlc.SetCategoryParentParams{
			ParentID: nullableUUID(parentID),
			ID:       p.id,
			StoreID:  storeID,
		}); err != nil {
			return 0, fmt.Errorf("failed to link category %d to parent %d: %w", p.externID, p.parentRef, err)
		}
	}

	return synced, nil
}
