package integration

import (
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	syncapp "github.com/stacklok/commerce-sync/internal/app"
	"github.com/stacklok/commerce-sync/internal/config"
	"github.com/stacklok/commerce-sync/internal/db/sqlc"
	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
	"github.com/stacklok/commerce-sync/internal/sync/retry"
	"github.com/stacklok/commerce-sync/internal/sync/state"
	"github.com/stacklok/commerce-sync/test-integration/sync-engine/helpers"
)

var _ = Describe("Crash Recovery", Label("recovery"), func() {
	var (
		batchDir   string
		storeID    uuid.UUID
		queries    *sqlc.Queries
		components *syncapp.AppComponents
	)

	getLog := func(id uuid.UUID) *state.SyncLog {
		log, err := components.Recorder.Get(ctx, storeID, id)
		Expect(err).NotTo(HaveOccurred())
		return log
	}

	// stalledLog opens an orders sync and backdates it as if its worker died
	stalledLog := func(age time.Duration) uuid.UUID {
		id, err := components.Recorder.Open(ctx, storeID, "orders")
		Expect(err).NotTo(HaveOccurred())
		Expect(helpers.BackdateSyncLog(ctx, pool, id, age)).To(Succeed())
		return id
	}

	BeforeEach(func() {
		batchDir = createTempDir("recovery-test-")

		queries = sqlc.New(pool)
		store, err := queries.CreateStore(ctx, helpers.UniqueStoreName("recovery"))
		Expect(err).NotTo(HaveOccurred())
		storeID = store.ID

		cfg := &config.Config{
			Source: &config.SourceConfig{
				Type: config.SourceTypeFile,
				File: &config.FileConfig{Dir: batchDir},
			},
		}
		components, err = syncapp.NewComponents(pool, cfg, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		cleanupTempDir(batchDir)
	})

	Context("Stalled syncs", func() {
		It("should fail only syncs running past the threshold", func() {
			stale := stalledLog(20 * time.Minute)
			fresh := stalledLog(5 * time.Minute)

			reaped, err := components.Reaper.DetectStaleSyncs(ctx, storeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reaped).To(Equal(int64(1)))

			log := getLog(stale)
			Expect(log.Status).To(Equal(state.StatusFailed))
			Expect(log.ErrorMessage).To(ContainSubstring("stalled"))
			Expect(getLog(fresh).Status).To(Equal(state.StatusRunning))
		})
	})

	Context("Recovery passes", func() {
		It("should reap, schedule and then re-run a stalled sync from the batch source", func() {
			id := stalledLog(20 * time.Minute)

			summary := components.Coordinator.RunOnce(ctx)
			Expect(summary.Reaped).To(BeNumerically(">=", 1))
			Expect(summary.Scheduled).To(BeNumerically(">=", 1))

			log := getLog(id)
			Expect(log.Status).To(Equal(state.StatusFailed))
			Expect(log.RetryCount).To(Equal(1))
			Expect(log.NextRetryAt).NotTo(BeNil())
			Expect(*log.NextRetryAt).To(BeTemporally(">", time.Now()))

			// Nothing is due yet, so a second pass leaves the log alone
			components.Coordinator.RunOnce(ctx)
			Expect(getLog(id).Status).To(Equal(state.StatusFailed))

			_, err := helpers.WriteBatchFile(batchDir, storeID, "orders", helpers.CreateOrders())
			Expect(err).NotTo(HaveOccurred())
			Expect(helpers.MakeRetryDue(ctx, pool, id)).To(Succeed())

			summary = components.Coordinator.RunOnce(ctx)
			Expect(summary.Retried).To(BeNumerically(">=", 1))

			log = getLog(id)
			Expect(log.Status).To(Equal(state.StatusCompleted))
			Expect(log.RecordsSynced).To(Equal(2))
			Expect(log.RetryCount).To(Equal(1))
			Expect(log.NextRetryAt).To(BeNil())
			Expect(log.ErrorMessage).To(BeEmpty())

			count, err := queries.CountOrders(ctx, storeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(2)))
		})

		It("should fail a claimed retry whose batch is unavailable and schedule it again", func() {
			id := stalledLog(20 * time.Minute)
			components.Coordinator.RunOnce(ctx)
			Expect(helpers.MakeRetryDue(ctx, pool, id)).To(Succeed())

			summary := components.Coordinator.RunOnce(ctx)
			Expect(summary.RetryFailed).To(BeNumerically(">=", 1))

			log := getLog(id)
			Expect(log.Status).To(Equal(state.StatusFailed))
			Expect(log.ErrorMessage).To(ContainSubstring("failed to refetch batch"))
			Expect(log.RetryCount).To(Equal(1))
			Expect(log.NextRetryAt).To(BeNil())

			// The next pass picks the failure up again
			components.Coordinator.RunOnce(ctx)

			log = getLog(id)
			Expect(log.Status).To(Equal(state.StatusFailed))
			Expect(log.RetryCount).To(Equal(2))
			Expect(log.NextRetryAt).NotTo(BeNil())
		})

		It("should run the last retry once it is scheduled at the limit", func() {
			id := stalledLog(20 * time.Minute)
			reaped, err := components.Reaper.DetectStaleSyncs(ctx, storeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reaped).To(Equal(int64(1)))
			Expect(helpers.SetRetryCount(ctx, pool, id, retry.MaxRetries-1)).To(Succeed())

			components.Coordinator.RunOnce(ctx)

			log := getLog(id)
			Expect(log.Status).To(Equal(state.StatusFailed))
			Expect(log.RetryCount).To(Equal(retry.MaxRetries))
			Expect(log.NextRetryAt).NotTo(BeNil())

			_, err = helpers.WriteBatchFile(batchDir, storeID, "orders", helpers.CreateOrders())
			Expect(err).NotTo(HaveOccurred())
			Expect(helpers.MakeRetryDue(ctx, pool, id)).To(Succeed())

			due, err := components.Scheduler.GetDueRetries(ctx, storeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(HaveLen(1))
			Expect(due[0].ID).To(Equal(id))

			summary := components.Coordinator.RunOnce(ctx)
			Expect(summary.Retried).To(BeNumerically(">=", 1))

			log = getLog(id)
			Expect(log.Status).To(Equal(state.StatusCompleted))
			Expect(log.RecordsSynced).To(Equal(2))
			Expect(log.RetryCount).To(Equal(retry.MaxRetries))
			Expect(log.NextRetryAt).To(BeNil())
		})

		It("should leave a log alone once a retry has taken it over", func() {
			id := stalledLog(20 * time.Minute)
			stale := getLog(id)

			components.Coordinator.RunOnce(ctx)
			Expect(helpers.MakeRetryDue(ctx, pool, id)).To(Succeed())
			claimed, err := components.Scheduler.ClaimDueRetry(ctx, storeID, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(claimed).To(BeTrue())

			// The original worker finishes late
			err = components.Recorder.Close(ctx, id, state.CloseParams{
				Status:        state.StatusCompleted,
				RecordsSynced: 9,
				StartedAt:     stale.StartedAt,
			})
			Expect(err).To(MatchError(pkgsync.ErrNotRetryable))

			log := getLog(id)
			Expect(log.Status).To(Equal(state.StatusRunning))
			Expect(log.RecordsSynced).To(BeZero())
		})

		It("should stop scheduling once the retry limit is reached", func() {
			id := stalledLog(20 * time.Minute)
			reaped, err := components.Reaper.DetectStaleSyncs(ctx, storeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reaped).To(Equal(int64(1)))
			Expect(helpers.SetRetryCount(ctx, pool, id, retry.MaxRetries)).To(Succeed())

			result, err := components.Scheduler.ScheduleRetry(ctx, storeID, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(retry.StatusMaxRetriesReached))

			components.Coordinator.RunOnce(ctx)

			log := getLog(id)
			Expect(log.Status).To(Equal(state.StatusFailed))
			Expect(log.RetryCount).To(Equal(retry.MaxRetries))
			Expect(log.NextRetryAt).To(BeNil())

			err = components.Scheduler.MarkRetryStarted(ctx, storeID, id)
			Expect(err).To(MatchError(pkgsync.ErrMaxRetriesReached))
		})
	})
})
