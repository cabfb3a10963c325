// Package validator splits a raw batch into typed valid records and a count of
// skipped ones. Structural rules live in embedded JSON Schemas, one per entity
// kind; semantic rules (dates, decimals, quantities) are checked while the
// record is converted to its typed form.
package validator

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/gjson"

	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://schemas.commerce-sync.stacklok.dev/"

var decimalPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Validator checks records against the per-kind rules. It is safe for
// concurrent use once constructed.
type Validator struct {
	schemas map[pkgsync.EntityKind]*jsonschema.Schema
}

// New compiles the embedded schemas. It panics if a schema does not compile,
// since they ship with the binary.
func New() *Validator {
	compiler := jsonschema.NewCompiler()
	schemas := make(map[pkgsync.EntityKind]*jsonschema.Schema, len(pkgsync.Kinds()))

	for _, kind := range pkgsync.Kinds() {
		data, err := schemaFS.ReadFile("schemas/" + kind.String() + ".json")
		if err != nil {
			panic(fmt.Sprintf("validator: missing schema for %s: %v", kind, err))
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			panic(fmt.Sprintf("validator: invalid schema JSON for %s: %v", kind, err))
		}
		url := schemaBaseURL + kind.String() + ".json"
		if err := compiler.AddResource(url, doc); err != nil {
			panic(fmt.Sprintf("validator: failed to add schema for %s: %v", kind, err))
		}
		schema, err := compiler.Compile(url)
		if err != nil {
			panic(fmt.Sprintf("validator: failed to compile schema for %s: %v", kind, err))
		}
		schemas[kind] = schema
	}

	return &Validator{schemas: schemas}
}

// SplitBatch checks that batch is a JSON array and returns its elements.
// A batch that is not an array yields pkgsync.ErrInvalidBatchShape.
func SplitBatch(batch []byte) ([]json.RawMessage, error) {
	if !gjson.ValidBytes(batch) {
		return nil, pkgsync.ErrInvalidBatchShape
	}
	parsed := gjson.ParseBytes(batch)
	if !parsed.IsArray() {
		return nil, pkgsync.ErrInvalidBatchShape
	}

	elements := parsed.Array()
	records := make([]json.RawMessage, 0, len(elements))
	for _, element := range elements {
		records = append(records, json.RawMessage(element.Raw))
	}
	return records, nil
}

// Validate returns the records that pass every rule for kind, in input order,
// and the number of records that did not. Invalid records are logged and
// never abort the batch.
func (v *Validator) Validate(kind pkgsync.EntityKind, records []json.RawMessage) ([]Record, int) {
	valid := make([]Record, 0, len(records))
	skipped := 0

	schema, ok := v.schemas[kind]
	if !ok {
		slog.Warn("Skipping batch of unknown entity kind", "kind", kind, "records", len(records))
		return valid, len(records)
	}

	for i, raw := range records {
		record, err := v.validateOne(kind, schema, raw)
		if err != nil {
			skipped++
			slog.Warn("Skipping invalid record",
				"kind", kind,
				"index", i,
				"reason", err.Error(),
				"record", redact(kind, raw))
			continue
		}
		valid = append(valid, record)
	}

	return valid, skipped
}

func (*Validator) validateOne(kind pkgsync.EntityKind, schema *jsonschema.Schema, raw json.RawMessage) (Record, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("record is not valid JSON: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, flattenSchemaError(err)
	}

	doc := gjson.ParseBytes(raw)
	switch kind {
	case pkgsync.KindOrders:
		return parseOrder(doc)
	case pkgsync.KindProducts:
		return parseProduct(doc)
	case pkgsync.KindCustomers:
		return parseCustomer(doc)
	case pkgsync.KindCategories:
		return parseCategory(doc)
	}
	return nil, fmt.Errorf("unsupported entity kind %q", kind)
}

func parseOrder(doc gjson.Result) (*OrderRecord, error) {
	createdAt, err := parseTimestamp(doc.Get("created_at").String())
	if err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	total, ok := decimal(doc.Get("total_price"))
	if !ok || total == nil {
		return nil, fmt.Errorf("total_price: %q is not a decimal number", doc.Get("total_price").String())
	}
	subtotal, ok := decimal(doc.Get("subtotal_price"))
	if !ok {
		return nil, fmt.Errorf("subtotal_price: %q is not a decimal number", doc.Get("subtotal_price").String())
	}
	tax, ok := decimal(doc.Get("total_tax"))
	if !ok {
		return nil, fmt.Errorf("total_tax: %q is not a decimal number", doc.Get("total_tax").String())
	}

	order := &OrderRecord{
		ID:            doc.Get("id").Int(),
		OrderNumber:   doc.Get("order_number").String(),
		Status:        doc.Get("status").String(),
		Currency:      doc.Get("currency").String(),
		SubtotalPrice: subtotal,
		TotalTax:      tax,
		TotalPrice:    *total,
		CustomerRef:   reference(doc, "customer_id", "customer.id"),
		CreatedAt:     createdAt,
	}
	if order.OrderNumber == "" {
		order.OrderNumber = strconv.FormatInt(order.ID, 10)
	}

	items := doc.Get("line_items").Array()
	order.LineItems = make([]LineItemRecord, 0, len(items))
	for i, item := range items {
		quantity := item.Get("quantity").Int()
		if quantity <= 0 || quantity > int64(^uint32(0)>>1) {
			return nil, fmt.Errorf("line_items[%d].quantity: must be a positive integer, got %s", i, item.Get("quantity").Raw)
		}
		price, ok := decimal(item.Get("price"))
		if !ok {
			return nil, fmt.Errorf("line_items[%d].price: %q is not a decimal number", i, item.Get("price").String())
		}
		order.LineItems = append(order.LineItems, LineItemRecord{
			ID:         item.Get("id").Int(),
			ProductRef: reference(item, "product_id"),
			Title:      item.Get("title").String(),
			SKU:        item.Get("sku").String(),
			Quantity:   int32(quantity),
			Price:      price,
		})
	}

	return order, nil
}

func parseProduct(doc gjson.Result) (*ProductRecord, error) {
	price, ok := decimal(doc.Get("price"))
	if !ok {
		return nil, fmt.Errorf("price: %q is not a decimal number", doc.Get("price").String())
	}
	createdAt, err := optionalTimestamp(doc.Get("created_at"))
	if err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	return &ProductRecord{
		ID:          doc.Get("id").Int(),
		Title:       doc.Get("title").String(),
		Vendor:      doc.Get("vendor").String(),
		ProductType: doc.Get("product_type").String(),
		Status:      doc.Get("status").String(),
		Price:       price,
		CategoryRef: reference(doc, "category_id"),
		CreatedAt:   createdAt,
	}, nil
}

func parseCustomer(doc gjson.Result) (*CustomerRecord, error) {
	totalSpent, ok := decimal(doc.Get("total_spent"))
	if !ok {
		return nil, fmt.Errorf("total_spent: %q is not a decimal number", doc.Get("total_spent").String())
	}
	createdAt, err := optionalTimestamp(doc.Get("created_at"))
	if err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	ordersCount := doc.Get("orders_count").Int()
	if ordersCount > int64(^uint32(0)>>1) {
		return nil, fmt.Errorf("orders_count: %d is out of range", ordersCount)
	}
	return &CustomerRecord{
		ID:          doc.Get("id").Int(),
		EmailHash:   HashEmail(doc.Get("email").String()),
		FirstName:   doc.Get("first_name").String(),
		LastName:    doc.Get("last_name").String(),
		OrdersCount: int32(ordersCount),
		TotalSpent:  totalSpent,
		CreatedAt:   createdAt,
	}, nil
}

func parseCategory(doc gjson.Result) (*CategoryRecord, error) {
	return &CategoryRecord{
		ID:        doc.Get("id").Int(),
		Name:      doc.Get("name").String(),
		ParentRef: reference(doc, "parent_id"),
	}, nil
}

// HashEmail returns the hex SHA-256 of the trimmed, lower-cased email, or an
// empty string when there is no email.
func HashEmail(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// reference returns the first present external reference among paths.
// Absent, null and 0 all mean no reference.
func reference(doc gjson.Result, paths ...string) int64 {
	for _, path := range paths {
		if v := doc.Get(path); v.Exists() && v.Type == gjson.Number && v.Int() > 0 {
			return v.Int()
		}
	}
	return 0
}

// decimal returns the canonical text of a numeric field. Absent and null
// fields yield (nil, true); malformed values yield (nil, false).
func decimal(v gjson.Result) (*string, bool) {
	switch v.Type {
	case gjson.Null:
		return nil, true
	case gjson.Number:
		s := v.Raw
		if !decimalPattern.MatchString(s) {
			s = strconv.FormatFloat(v.Float(), 'f', -1, 64)
		}
		return &s, true
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if !decimalPattern.MatchString(s) {
			return nil, false
		}
		return &s, true
	default:
		return nil, false
	}
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%q is not an ISO-8601 date", s)
}

func optionalTimestamp(v gjson.Result) (*time.Time, error) {
	if v.Type == gjson.Null || strings.TrimSpace(v.String()) == "" {
		return nil, nil
	}
	t, err := parseTimestamp(v.String())
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func flattenSchemaError(err error) error {
	msg := err.Error()
	// The first line names the schema URL; the detail lines carry the reason.
	if _, detail, found := strings.Cut(msg, "\n"); found {
		msg = strings.Join(strings.Fields(detail), " ")
	}
	return fmt.Errorf("schema violation: %s", msg)
}

// redact returns the record for logging with customer emails removed
func redact(kind pkgsync.EntityKind, raw json.RawMessage) string {
	s := string(raw)
	if kind != pkgsync.KindCustomers {
		return s
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return s
	}
	if _, ok := fields["email"]; ok {
		fields["email"] = "[redacted]"
	}
	out, err := json.Marshal(fields)
	if err != nil {
		return s
	}
	return string(out)
}
