// src/processors/purchase_processor.go
package processors

import (
	"github.com/username/paybook/src/database"
	"github.com/username/paybook/src/models"
	"github.com/username/paybook/src/utils"
)

// PurchaseProcessor turns vendor-resolved debit rows into purchase records.
// Structurally the mirror of SaleProcessor.
type PurchaseProcessor struct {
	amounts *utils.AmountConverter
}

func NewPurchaseProcessor(amounts *utils.AmountConverter) *PurchaseProcessor {
	return &PurchaseProcessor{amounts: amounts}
}

func (p *PurchaseProcessor) Stage() models.Stage { return models.StagePurchase }

func (p *PurchaseProcessor) EmptyNotice() string {
	return "There are no purchase transactions to import."
}

func (p *PurchaseProcessor) Process(st *database.Store) (int, int, error) {
	rows, err := st.RawImports(database.Where().
		StagePending(models.StagePurchase).
		StageDone(models.StageVendor).
		Eq("balance_impact", balanceDebit))
	if err != nil {
		return 0, 0, err
	}

	created := 0
	for _, row := range rows {
		if row.Name == "" || row.Name == paypalCounterparty {
			continue
		}

		vendorID, err := st.LookupID("vendors", "name", row.Name)
		if err != nil {
			return created, len(rows), err
		}
		statusID, err := st.LookupID("purchase_status", "name", "complete")
		if err != nil {
			return created, len(rows), err
		}
		typeID, err := st.LookupID("purchase_type", "name", "unknown")
		if err != nil {
			return created, len(rows), err
		}

		gross, err := p.amounts.Float(row.Gross)
		if err != nil {
			return created, len(rows), err
		}
		tax, err := p.amounts.Float(row.SalesTax)
		if err != nil {
			return created, len(rows), err
		}
		shipping, err := p.amounts.Float(row.Shipping)
		if err != nil {
			return created, len(rows), err
		}

		_, err = st.Insert("purchase_records", database.Record{
			"date":             row.Date,
			"vendor_id":        vendorID,
			"raw_import_id":    row.ID,
			"status_id":        statusID,
			"type_id":          typeID,
			"transaction_uuid": row.TransactionID,
			"gross":            gross,
			"tax":              tax,
			"shipping":         shipping,
			"notes":            row.Subject + "\n" + row.ItemTitle,
			"committed":        false,
		})
		if err != nil {
			return created, len(rows), err
		}
		created++

		if err := st.MarkStage(row, models.StagePurchase); err != nil {
			return created, len(rows), err
		}
	}
	return created, len(rows), nil
}
