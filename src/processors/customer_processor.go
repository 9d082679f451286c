// src/processors/customer_processor.go
package processors

import (
	"github.com/username/paybook/src/database"
	"github.com/username/paybook/src/models"
)

// Payment types that identify a credit-side row as a real customer
// transaction. Everything else on the credit side (refund reversals, bank
// transfers in, ...) is not a customer.
const (
	typeWebsitePayment = "Website Payment"
	typeGeneralPayment = "General Payment"
)

// CustomerProcessor derives customer contacts from credit-side raw rows.
// Customers dedup on name: the first sighting creates the contact and later
// rows never update it, even when they carry different address data.
type CustomerProcessor struct{}

func NewCustomerProcessor() *CustomerProcessor { return &CustomerProcessor{} }

func (p *CustomerProcessor) Stage() models.Stage { return models.StageCustomer }

func (p *CustomerProcessor) EmptyNotice() string {
	return "There are no customer contacts to import."
}

func (p *CustomerProcessor) Process(st *database.Store) (int, int, error) {
	rows, err := st.RawImports(database.Where().
		StagePending(models.StageCustomer).
		Eq("balance_impact", balanceCredit))
	if err != nil {
		return 0, 0, err
	}

	created := 0
	for _, row := range rows {
		if row.Type != typeWebsitePayment && row.Type != typeGeneralPayment {
			// Not a customer transaction; leave the row for a later run in
			// case its type is reclassified.
			continue
		}

		exists, err := st.Exists("customers", "name", row.Name)
		if err != nil {
			return created, len(rows), err
		}
		if !exists {
			if err := p.insertCustomer(st, row); err != nil {
				return created, len(rows), err
			}
			created++
		}

		// Mark every qualifying row, not just the ones that created a
		// contact. A row whose name duplicates an existing customer must
		// still become eligible for sale derivation.
		if err := st.MarkStage(row, models.StageCustomer); err != nil {
			return created, len(rows), err
		}
	}
	return created, len(rows), nil
}

func (p *CustomerProcessor) insertCustomer(st *database.Store, row models.RawImportRecord) error {
	emailStatusID, err := st.LookupID("email_status", "name", "primary")
	if err != nil {
		return err
	}
	phoneStatusID, err := st.LookupID("phone_status", "name", "primary")
	if err != nil {
		return err
	}
	classID, err := st.LookupID("contact_class", "name", "retail")
	if err != nil {
		return err
	}

	// The country stage runs first, so a non-empty code always resolves.
	var countryID any
	if row.CountryCode != "" {
		id, err := st.LookupID("countries", "abbreviation", row.CountryCode)
		if err != nil {
			return err
		}
		countryID = id
	}

	_, err = st.Insert("customers", database.Record{
		"date_created":    row.Date,
		"name":            row.Name,
		"address1":        row.AddressLine1,
		"address2":        row.AddressLine2,
		"city":            row.City,
		"state":           row.State,
		"zip":             row.PostalCode,
		"email_address":   row.FromEmail,
		"email_status_id": emailStatusID,
		"phone_number":    row.Phone,
		"phone_status_id": phoneStatusID,
		"description":     "Imported from PayPal",
		"notes":           row.Subject,
		"country_id":      countryID,
		"class_id":        classID,
	})
	return err
}
