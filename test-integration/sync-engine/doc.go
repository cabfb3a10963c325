// Package integration provides end-to-end tests for the sync engine.
// They run the writer, the retry scheduler, the reaper and the recovery
// coordinator against a real PostgreSQL started with testcontainers, covering
// cross-batch reference resolution, idempotent re-delivery, line item
// replacement and crash recovery through a file batch source.
package integration
