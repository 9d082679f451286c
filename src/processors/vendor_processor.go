// src/processors/vendor_processor.go
package processors

import (
	"github.com/username/paybook/src/database"
	"github.com/username/paybook/src/models"
)

// VendorProcessor derives vendor contacts from debit-side raw rows. Same
// lazy-create-once semantics as customers: name is the dedup key and the
// first sighting wins.
type VendorProcessor struct{}

func NewVendorProcessor() *VendorProcessor { return &VendorProcessor{} }

func (p *VendorProcessor) Stage() models.Stage { return models.StageVendor }

func (p *VendorProcessor) EmptyNotice() string {
	return "There are no vendor contacts to import."
}

func (p *VendorProcessor) Process(st *database.Store) (int, int, error) {
	rows, err := st.RawImports(database.Where().
		StagePending(models.StageVendor).
		Eq("balance_impact", balanceDebit))
	if err != nil {
		return 0, 0, err
	}

	created := 0
	for _, row := range rows {
		if row.Name == "" || row.Name == paypalCounterparty {
			// PayPal's own fee and transfer lines. Never flagged, so they
			// stay pending and never become purchases.
			continue
		}

		exists, err := st.Exists("vendors", "name", row.Name)
		if err != nil {
			return created, len(rows), err
		}
		if !exists {
			if err := p.insertVendor(st, row); err != nil {
				return created, len(rows), err
			}
			created++
		}

		// Mark duplicates too, so purchase derivation still sees them.
		if err := st.MarkStage(row, models.StageVendor); err != nil {
			return created, len(rows), err
		}
	}
	return created, len(rows), nil
}

func (p *VendorProcessor) insertVendor(st *database.Store, row models.RawImportRecord) error {
	emailStatusID, err := st.LookupID("email_status", "name", "primary")
	if err != nil {
		return err
	}
	phoneStatusID, err := st.LookupID("phone_status", "name", "primary")
	if err != nil {
		return err
	}
	typeID, err := st.LookupID("vendor_type", "name", "unknown")
	if err != nil {
		return err
	}

	_, err = st.Insert("vendors", database.Record{
		"date_created":    row.Date,
		"name":            row.Name,
		"contact_name":    "",
		"email_address":   row.ToEmail,
		"email_status_id": emailStatusID,
		"phone_number":    "",
		"phone_status_id": phoneStatusID,
		"description":     row.ItemTitle,
		"notes":           row.Subject,
		"type_id":         typeID,
	})
	return err
}
