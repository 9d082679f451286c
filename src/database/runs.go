// src/database/runs.go
package database

import (
	"fmt"
	"time"

	"github.com/username/paybook/src/models"
)

// InsertImportRun records the start of a pipeline invocation.
func (s *Store) InsertImportRun(run models.ImportRun) (int64, error) {
	return s.Insert("import_runs", Record{
		"run_uuid":   run.RunUUID,
		"file_name":  run.FileName,
		"started_at": run.StartedAt.UTC().Format(time.RFC3339),
		"status":     run.Status,
	})
}

// FinishImportRun writes the final state and counters of a run.
func (s *Store) FinishImportRun(run models.ImportRun) error {
	rec := Record{
		"status":    run.Status,
		"accepted":  run.Accepted,
		"rejected":  run.Rejected,
		"countries": run.Countries,
		"customers": run.Customers,
		"vendors":   run.Vendors,
		"sales":     run.Sales,
		"purchases": run.Purchases,
		"error":     run.Error,
	}
	if run.FinishedAt != nil {
		rec["finished_at"] = run.FinishedAt.UTC().Format(time.RFC3339)
	}
	return s.UpdateByID("import_runs", run.ID, rec)
}

// ImportRuns returns the most recent runs, newest first.
func (s *Store) ImportRuns(limit int) ([]models.ImportRun, error) {
	rows, err := s.q.Query(`SELECT id, run_uuid, file_name, started_at, finished_at, status,
		accepted, rejected, countries, customers, vendors, sales, purchases, error
		FROM import_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying import runs: %w", err)
	}
	defer rows.Close()

	var runs []models.ImportRun
	for rows.Next() {
		var run models.ImportRun
		var startedAt string
		var finishedAt, errText *string
		if err := rows.Scan(&run.ID, &run.RunUUID, &run.FileName, &startedAt, &finishedAt, &run.Status,
			&run.Accepted, &run.Rejected, &run.Countries, &run.Customers, &run.Vendors,
			&run.Sales, &run.Purchases, &errText); err != nil {
			return nil, fmt.Errorf("error scanning import run row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			run.StartedAt = t
		}
		if finishedAt != nil {
			if t, err := time.Parse(time.RFC3339, *finishedAt); err == nil {
				run.FinishedAt = &t
			}
		}
		if errText != nil {
			run.Error = *errText
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over import run rows: %w", err)
	}
	return runs, nil
}
