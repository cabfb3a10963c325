// Package coordinator runs the background recovery loop of the sync engine.
//
// Every pass walks the stores and, for each one:
//
//  1. Fails syncs stuck in running for longer than the stale threshold
//  2. Schedules a retry for every failed sync that has retries left and no
//     next_retry_at
//  3. Claims each due retry, fetches a fresh batch of the same entity kind from
//     the configured BatchSource and upserts it into the claimed sync log
//
// Without a BatchSource only the first two steps run; due retries stay in
// place until a source is configured or another worker executes them.
//
// Passes run once at startup and then on a ticker whose interval is jittered
// on every tick so replicas drift apart. Errors are logged per store and per
// sync log; a pass never stops the loop.
//
// Usage:
//
//	coord := coordinator.New(sqlc.New(pool), scheduler, reaper, syncWriter, recorder,
//		coordinator.WithBatchSource(source),
//		coordinator.WithPollInterval(cfg.GetPollInterval()))
//	go coord.Start(ctx)
//	defer coord.Stop()
package coordinator
