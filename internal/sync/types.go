package sync

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EntityKind identifies one of the ingestible entity tables
type EntityKind string

const (
	// KindOrders is an order with its line items
	KindOrders EntityKind = "orders"
	// KindProducts is a catalog product
	KindProducts EntityKind = "products"
	// KindCustomers is a storefront customer
	KindCustomers EntityKind = "customers"
	// KindCategories is a product category, optionally nested
	KindCategories EntityKind = "categories"
)

// WebhookSyncTypePrefix marks sync types triggered by storefront webhooks
const WebhookSyncTypePrefix = "webhook:"

// Kinds lists every supported entity kind
func Kinds() []EntityKind {
	return []EntityKind{KindOrders, KindProducts, KindCustomers, KindCategories}
}

// String implements fmt.Stringer
func (k EntityKind) String() string {
	return string(k)
}

// Valid reports whether k is a supported entity kind
func (k EntityKind) Valid() bool {
	switch k {
	case KindOrders, KindProducts, KindCustomers, KindCategories:
		return true
	}
	return false
}

// ParseEntityKind converts a string into an EntityKind
func ParseEntityKind(s string) (EntityKind, error) {
	k := EntityKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unsupported entity kind %q (expected one of %v)", s, Kinds())
	}
	return k, nil
}

// KindFromSyncType extracts the entity kind from a sync type such as
// "orders" or "webhook:products".
func KindFromSyncType(syncType string) (EntityKind, error) {
	return ParseEntityKind(strings.TrimPrefix(syncType, WebhookSyncTypePrefix))
}

// Result is the outcome of a successful batch upsert.
// SyncedCount + SkippedCount always equals the batch length.
type Result struct {
	SyncedCount  int       `json:"synced_count"`
	SkippedCount int       `json:"skipped_count"`
	SyncLogID    uuid.UUID `json:"sync_log_id"`
}
