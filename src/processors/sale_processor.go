// src/processors/sale_processor.go
package processors

import (
	"github.com/username/paybook/src/database"
	"github.com/username/paybook/src/models"
	"github.com/username/paybook/src/utils"
)

// SaleProcessor turns customer-resolved credit rows into sale records, one
// per raw row. No dedup beyond the raw-import gate: a duplicate transaction
// never reaches this stage because ingestion rejects it.
type SaleProcessor struct {
	amounts *utils.AmountConverter
}

func NewSaleProcessor(amounts *utils.AmountConverter) *SaleProcessor {
	return &SaleProcessor{amounts: amounts}
}

func (p *SaleProcessor) Stage() models.Stage { return models.StageSale }

func (p *SaleProcessor) EmptyNotice() string {
	return "There are no sales transactions to import."
}

func (p *SaleProcessor) Process(st *database.Store) (int, int, error) {
	rows, err := st.RawImports(database.Where().
		StagePending(models.StageSale).
		StageDone(models.StageCustomer).
		Eq("balance_impact", balanceCredit))
	if err != nil {
		return 0, 0, err
	}

	created := 0
	for _, row := range rows {
		if row.Name == "" || row.Name == paypalCounterparty {
			continue
		}

		customerID, err := st.LookupID("customers", "name", row.Name)
		if err != nil {
			return created, len(rows), err
		}
		statusID, err := st.LookupID("sale_status", "name", "complete")
		if err != nil {
			return created, len(rows), err
		}

		// Amounts are stored non-negative; the credit side of the ledger is
		// implied by the table the row lands in.
		gross, err := p.amounts.Float(row.Gross)
		if err != nil {
			return created, len(rows), err
		}
		fees, err := p.amounts.Float(row.Fee)
		if err != nil {
			return created, len(rows), err
		}
		shipping, err := p.amounts.Float(row.Shipping)
		if err != nil {
			return created, len(rows), err
		}

		_, err = st.Insert("sale_records", database.Record{
			"date":             row.Date,
			"customer_id":      customerID,
			"raw_import_id":    row.ID,
			"status_id":        statusID,
			"transaction_uuid": row.TransactionID,
			"gross":            gross,
			"fees":             fees,
			"shipping":         shipping,
			"notes":            row.Subject + "\n" + row.ItemTitle,
			"committed":        false,
		})
		if err != nil {
			return created, len(rows), err
		}
		created++

		if err := st.MarkStage(row, models.StageSale); err != nil {
			return created, len(rows), err
		}
	}
	return created, len(rows), nil
}
