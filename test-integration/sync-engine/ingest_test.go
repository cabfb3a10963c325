package integration

import (
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	syncapp "github.com/stacklok/commerce-sync/internal/app"
	"github.com/stacklok/commerce-sync/internal/config"
	"github.com/stacklok/commerce-sync/internal/db/sqlc"
	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
	"github.com/stacklok/commerce-sync/internal/sync/state"
	"github.com/stacklok/commerce-sync/internal/sync/validator"
	"github.com/stacklok/commerce-sync/internal/sync/writer"
	"github.com/stacklok/commerce-sync/test-integration/sync-engine/helpers"
)

var _ = Describe("Batch Ingestion", Label("ingest"), func() {
	var (
		storeID    uuid.UUID
		queries    *sqlc.Queries
		components *syncapp.AppComponents
	)

	upsert := func(kind pkgsync.EntityKind, records any, opts ...writer.UpsertOption) *pkgsync.Result {
		result, err := components.Writer.Upsert(ctx, storeID, kind, helpers.MarshalBatch(records), opts...)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).NotTo(BeNil())
		return result
	}

	syncCatalog := func() {
		upsert(pkgsync.KindCategories, helpers.CreateCatalogCategories())
		upsert(pkgsync.KindProducts, helpers.CreateCatalogProducts())
		upsert(pkgsync.KindCustomers, helpers.CreateCustomers())
	}

	BeforeEach(func() {
		queries = sqlc.New(pool)
		store, err := queries.CreateStore(ctx, helpers.UniqueStoreName("ingest"))
		Expect(err).NotTo(HaveOccurred())
		storeID = store.ID

		components, err = syncapp.NewComponents(pool, &config.Config{}, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("Entities synced in separate calls", func() {
		It("should resolve references written by earlier batches", func() {
			syncCatalog()

			result := upsert(pkgsync.KindOrders, helpers.CreateOrders())
			Expect(result.SyncedCount).To(Equal(2))
			Expect(result.SkippedCount).To(Equal(1))

			customer, err := queries.GetCustomerByExternalID(ctx, sqlc.GetCustomerByExternalIDParams{
				StoreID: storeID, ExternalID: 9001,
			})
			Expect(err).NotTo(HaveOccurred())

			paid, err := queries.GetOrderByExternalID(ctx, sqlc.GetOrderByExternalIDParams{
				StoreID: storeID, ExternalOrderID: 7001,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(paid.CustomerID.Valid).To(BeTrue())
			Expect(uuid.UUID(paid.CustomerID.Bytes)).To(Equal(customer.ID))

			mug, err := queries.GetProductByExternalID(ctx, sqlc.GetProductByExternalIDParams{
				StoreID: storeID, ExternalID: 501,
			})
			Expect(err).NotTo(HaveOccurred())

			items, err := queries.ListOrderItems(ctx, sqlc.ListOrderItemsParams{StoreID: storeID, OrderID: paid.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(2))
			Expect(items[0].ProductID.Valid).To(BeTrue())
			Expect(uuid.UUID(items[0].ProductID.Bytes)).To(Equal(mug.ID))
		})

		It("should leave sentinel and unknown references null", func() {
			syncCatalog()
			upsert(pkgsync.KindOrders, helpers.CreateOrders())

			pending, err := queries.GetOrderByExternalID(ctx, sqlc.GetOrderByExternalIDParams{
				StoreID: storeID, ExternalOrderID: 7002,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(pending.CustomerID.Valid).To(BeFalse())

			items, err := queries.ListOrderItems(ctx, sqlc.ListOrderItemsParams{StoreID: storeID, OrderID: pending.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].ProductID.Valid).To(BeFalse())

			giftCard, err := queries.GetProductByExternalID(ctx, sqlc.GetProductByExternalIDParams{
				StoreID: storeID, ExternalID: 503,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(giftCard.CategoryID.Valid).To(BeFalse())
		})

		It("should link a category to a parent written later in the same batch", func() {
			upsert(pkgsync.KindCategories, helpers.CreateCatalogCategories())

			parent, err := queries.GetCategoryByExternalID(ctx, sqlc.GetCategoryByExternalIDParams{
				StoreID: storeID, ExternalID: 10,
			})
			Expect(err).NotTo(HaveOccurred())
			child, err := queries.GetCategoryByExternalID(ctx, sqlc.GetCategoryByExternalIDParams{
				StoreID: storeID, ExternalID: 11,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(child.ParentID.Valid).To(BeTrue())
			Expect(uuid.UUID(child.ParentID.Bytes)).To(Equal(parent.ID))
		})

		It("should store only the hash of customer emails", func() {
			upsert(pkgsync.KindCustomers, helpers.CreateCustomers())

			customer, err := queries.GetCustomerByExternalID(ctx, sqlc.GetCustomerByExternalIDParams{
				StoreID: storeID, ExternalID: 9001,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(customer.EmailHash.String).To(Equal(validator.HashEmail("ada@example.com")))
			Expect(customer.EmailHash.String).NotTo(ContainSubstring("@"))
		})
	})

	Context("Re-delivery of the same batch", func() {
		It("should converge to the same rows", func() {
			syncCatalog()
			first := upsert(pkgsync.KindOrders, helpers.CreateOrders())
			before, err := queries.CountOrders(ctx, storeID)
			Expect(err).NotTo(HaveOccurred())

			second := upsert(pkgsync.KindOrders, helpers.CreateOrders())
			after, err := queries.CountOrders(ctx, storeID)
			Expect(err).NotTo(HaveOccurred())

			Expect(second.SyncedCount).To(Equal(first.SyncedCount))
			Expect(second.SkippedCount).To(Equal(first.SkippedCount))
			Expect(after).To(Equal(before))
			Expect(after).To(Equal(int64(2)))
			Expect(second.SyncLogID).NotTo(Equal(first.SyncLogID))
		})

		It("should drop line items missing from the latest payload", func() {
			syncCatalog()
			orders := helpers.CreateOrders()
			upsert(pkgsync.KindOrders, orders)

			orders[0].Status = "refunded"
			orders[0].LineItems = orders[0].LineItems[1:]
			upsert(pkgsync.KindOrders, orders[:1], writer.WithSyncType(pkgsync.WebhookSyncTypePrefix+"orders"))

			order, err := queries.GetOrderByExternalID(ctx, sqlc.GetOrderByExternalIDParams{
				StoreID: storeID, ExternalOrderID: 7001,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(order.Status).To(Equal("refunded"))

			items, err := queries.ListOrderItems(ctx, sqlc.ListOrderItemsParams{StoreID: storeID, OrderID: order.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].ExternalID.Int64).To(Equal(int64(2)))
		})
	})

	Context("Sync logs", func() {
		It("should record one completed log per call", func() {
			result := upsert(pkgsync.KindOrders, []helpers.Order{{ID: 1}}, writer.WithSyncType("webhook:orders"))
			Expect(result.SyncedCount).To(Equal(0))
			Expect(result.SkippedCount).To(Equal(1))

			log, err := components.Recorder.Get(ctx, storeID, result.SyncLogID)
			Expect(err).NotTo(HaveOccurred())
			Expect(log.Status).To(Equal(state.StatusCompleted))
			Expect(log.SyncType).To(Equal("webhook:orders"))
			Expect(log.RecordsSynced).To(BeZero())
			Expect(log.CompletedAt).NotTo(BeNil())

			store, err := queries.GetStore(ctx, storeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(store.LastSyncedAt.Valid).To(BeFalse(), "no transaction runs for an all-invalid batch")
		})

		It("should reject a batch that is not an array without a log", func() {
			_, err := components.Writer.Upsert(ctx, storeID, pkgsync.KindOrders, []byte(`{"id": 1}`))
			Expect(err).To(MatchError(pkgsync.ErrInvalidBatchShape))

			logs, err := components.Recorder.ListRecent(ctx, storeID, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(logs).To(BeEmpty())
		})
	})
})
