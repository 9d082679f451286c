// src/services/import_service.go
package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/username/paybook/src/database"
	"github.com/username/paybook/src/logger"
	"github.com/username/paybook/src/models"
	"github.com/username/paybook/src/parsers"
	"github.com/username/paybook/src/processors"
)

type importServiceImpl struct {
	store    *database.Store
	parser   parsers.Parser
	stages   []processors.StageProcessor
	notifier Notifier
}

// NewImportService wires the parser and the derivation stages into the
// pipeline. The order of the stage processors is a correctness dependency:
// sale derivation reads the flag customer derivation sets, purchase reads
// vendor's, and everything reads the rows ingestion writes.
func NewImportService(
	store *database.Store,
	parser parsers.Parser,
	countryProcessor *processors.CountryProcessor,
	customerProcessor *processors.CustomerProcessor,
	vendorProcessor *processors.VendorProcessor,
	saleProcessor *processors.SaleProcessor,
	purchaseProcessor *processors.PurchaseProcessor,
	notifier Notifier,
) ImportService {
	return &importServiceImpl{
		store:  store,
		parser: parser,
		stages: []processors.StageProcessor{
			countryProcessor,
			customerProcessor,
			vendorProcessor,
			saleProcessor,
			purchaseProcessor,
		},
		notifier: notifier,
	}
}

// ImportFile runs the full pipeline over one CSV file: raw ingestion, then
// the five derivation stages strictly in order, each in its own database
// transaction. Any failure aborts the run; stages already committed stay
// committed.
func (s *importServiceImpl) ImportFile(path string) (*ImportResult, error) {
	startTime := time.Now()
	logger.L.Info("ImportFile START", "file", path)

	run := models.ImportRun{
		RunUUID:   uuid.NewString(),
		FileName:  filepath.Base(path),
		StartedAt: startTime,
		Status:    "running",
	}
	runID, err := s.store.InsertImportRun(run)
	if err != nil {
		s.notifier.Error(fmt.Sprintf("Could not import file: %q", path))
		return nil, err
	}
	run.ID = runID

	result, err := s.runPipeline(path)
	if err != nil {
		s.notifier.Error(fmt.Sprintf("Could not import file: %q", path))
		run.Status = "failed"
		run.Error = err.Error()
		s.finishRun(&run, result)
		return nil, err
	}
	result.RunUUID = run.RunUUID

	run.Status = "completed"
	s.finishRun(&run, result)
	s.notifier.Summary(result)

	logger.L.Info("ImportFile END", "file", path, "duration", time.Since(startTime))
	return result, nil
}

func (s *importServiceImpl) runPipeline(path string) (*ImportResult, error) {
	result := &ImportResult{}

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	defer file.Close()

	records, err := s.parser.Parse(file)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	if err := s.ingest(records, result); err != nil {
		return result, err
	}

	for _, stage := range s.stages {
		created, pending, err := 0, 0, error(nil)
		txErr := s.store.Transact(func(st *database.Store) error {
			created, pending, err = stage.Process(st)
			return err
		})
		if txErr != nil {
			return result, fmt.Errorf("%s stage: %w", stage.Stage(), txErr)
		}
		if pending == 0 && stage.EmptyNotice() != "" {
			s.notifier.Info(stage.EmptyNotice())
		}
		result.addStage(stage.Stage(), created)
		logger.L.Info("Stage complete", "stage", stage.Stage().String(), "created", created, "pending", pending)
	}

	return result, nil
}

// ingest writes the parsed rows into raw_imports, one commit for the whole
// batch. Duplicates by TransactionID are counted as rejected and skipped;
// there is no unique constraint backing this, the existence check is the
// dedup gate.
func (s *importServiceImpl) ingest(records []models.RawImportRecord, result *ImportResult) error {
	return s.store.Transact(func(st *database.Store) error {
		for _, rec := range records {
			exists, err := st.Exists("raw_imports", "transaction_id", rec.TransactionID)
			if err != nil {
				return err
			}
			if exists {
				result.Rejected++
				continue
			}
			if _, err := st.InsertRawImport(rec); err != nil {
				return err
			}
			result.Accepted++
		}
		return nil
	})
}

func (r *ImportResult) addStage(stage models.Stage, created int) {
	switch stage {
	case models.StageCountry:
		r.Countries = created
	case models.StageCustomer:
		r.Customers = created
	case models.StageVendor:
		r.Vendors = created
	case models.StageSale:
		r.Sales = created
	case models.StagePurchase:
		r.Purchases = created
	}
}

func (s *importServiceImpl) finishRun(run *models.ImportRun, result *ImportResult) {
	now := time.Now()
	run.FinishedAt = &now
	if result != nil {
		run.Accepted = result.Accepted
		run.Rejected = result.Rejected
		run.Countries = result.Countries
		run.Customers = result.Customers
		run.Vendors = result.Vendors
		run.Sales = result.Sales
		run.Purchases = result.Purchases
	}
	if err := s.store.FinishImportRun(*run); err != nil {
		logger.L.Error("Failed to record import run", "runUUID", run.RunUUID, "error", err)
	}
}
