package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/stacklok/commerce-sync/internal/db/sqlc"
	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
	"github.com/stacklok/commerce-sync/internal/sync/coordinator"
	"github.com/stacklok/commerce-sync/internal/sync/retry"
	"github.com/stacklok/commerce-sync/internal/sync/state"
)

const timeLayout = time.RFC3339

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}
	return table.Render()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(timeLayout)
}

// printSyncLogs writes sync logs as a table or as JSON
func printSyncLogs(w io.Writer, format string, logs []state.SyncLog) error {
	if format == formatJSON {
		if logs == nil {
			logs = []state.SyncLog{}
		}
		return writeJSON(w, logs)
	}

	rows := make([][]string, 0, len(logs))
	for _, log := range logs {
		started := log.StartedAt
		rows = append(rows, []string{
			log.ID.String(),
			log.SyncType,
			string(log.Status),
			strconv.Itoa(log.RecordsSynced),
			strconv.Itoa(log.RetryCount),
			formatTime(log.NextRetryAt),
			formatTime(&started),
			log.ErrorMessage,
		})
	}
	return renderTable(w,
		[]string{"ID", "Type", "Status", "Records", "Retries", "Next Retry", "Started", "Error"},
		rows)
}

// printStores writes stores as a table or as JSON
func printStores(w io.Writer, format string, stores []sqlc.Store) error {
	if format == formatJSON {
		type storeView struct {
			ID           string     `json:"id"`
			Name         string     `json:"name"`
			LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
			CreatedAt    time.Time  `json:"created_at"`
		}
		views := make([]storeView, 0, len(stores))
		for _, s := range stores {
			v := storeView{ID: s.ID.String(), Name: s.Name, CreatedAt: s.CreatedAt.UTC()}
			if s.LastSyncedAt.Valid {
				t := s.LastSyncedAt.Time.UTC()
				v.LastSyncedAt = &t
			}
			views = append(views, v)
		}
		return writeJSON(w, views)
	}

	rows := make([][]string, 0, len(stores))
	for _, s := range stores {
		var lastSynced *time.Time
		if s.LastSyncedAt.Valid {
			lastSynced = &s.LastSyncedAt.Time
		}
		created := s.CreatedAt
		rows = append(rows, []string{s.ID.String(), s.Name, formatTime(lastSynced), formatTime(&created)})
	}
	return renderTable(w, []string{"ID", "Name", "Last Synced", "Created"}, rows)
}

// printUpsertResult writes the outcome of an ingested batch
func printUpsertResult(w io.Writer, format string, result *pkgsync.Result) error {
	if format == formatJSON {
		return writeJSON(w, result)
	}
	_, err := fmt.Fprintf(w, "sync log %s: %d synced, %d skipped\n",
		result.SyncLogID, result.SyncedCount, result.SkippedCount)
	return err
}

// scheduledRetry pairs a sync log with the outcome of scheduling its retry
type scheduledRetry struct {
	SyncLogID uuid.UUID `json:"sync_log_id"`
	retry.ScheduleResult
}

// printScheduledRetries writes the outcome of ScheduleRetry calls
func printScheduledRetries(w io.Writer, format string, scheduled []scheduledRetry) error {
	if format == formatJSON {
		return writeJSON(w, scheduled)
	}

	rows := make([][]string, 0, len(scheduled))
	for _, s := range scheduled {
		rows = append(rows, []string{
			s.SyncLogID.String(),
			string(s.Status),
			strconv.Itoa(s.RetryCount),
			formatTime(s.NextRetryAt),
		})
	}
	return renderTable(w, []string{"ID", "Status", "Retries", "Next Retry"}, rows)
}

// printPassSummary writes what a recovery pass did
func printPassSummary(w io.Writer, format string, summary coordinator.PassSummary) error {
	if format == formatJSON {
		return writeJSON(w, summary)
	}
	return renderTable(w,
		[]string{"Stores", "Reaped", "Scheduled", "Exhausted", "Retried", "Retry Failed", "Errors"},
		[][]string{{
			strconv.Itoa(summary.Stores),
			strconv.Itoa(summary.Reaped),
			strconv.Itoa(summary.Scheduled),
			strconv.Itoa(summary.Exhausted),
			strconv.Itoa(summary.Retried),
			strconv.Itoa(summary.RetryFailed),
			strconv.Itoa(summary.Errors),
		}})
}
