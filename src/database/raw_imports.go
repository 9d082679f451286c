// src/database/raw_imports.go
package database

import (
	"fmt"

	"github.com/username/paybook/src/models"
)

// rawImportColumns maps struct fields to their raw_imports columns in legend
// order. Kept in one place so the insert and scan sides cannot drift.
func rawImportToRecord(r models.RawImportRecord) Record {
	return Record{
		"stages":           int64(r.Stages),
		"date":             r.Date,
		"time":             r.Time,
		"time_zone":        r.TimeZone,
		"name":             r.Name,
		"type":             r.Type,
		"status":           r.Status,
		"currency":         r.Currency,
		"gross":            r.Gross,
		"fee":              r.Fee,
		"net":              r.Net,
		"from_email":       r.FromEmail,
		"to_email":         r.ToEmail,
		"transaction_id":   r.TransactionID,
		"shipping_address": r.ShippingAddress,
		"address_status":   r.AddressStatus,
		"item_title":       r.ItemTitle,
		"item_id":          r.ItemID,
		"shipping":         r.Shipping,
		"insurance_amount": r.InsuranceAmount,
		"sales_tax":        r.SalesTax,
		"option1_name":     r.Option1Name,
		"option1_value":    r.Option1Value,
		"option2_name":     r.Option2Name,
		"option2_value":    r.Option2Value,
		"reference_txn_id": r.ReferenceTxnID,
		"invoice_number":   r.InvoiceNumber,
		"custom_number":    r.CustomNumber,
		"quantity":         r.Quantity,
		"receipt_id":       r.ReceiptID,
		"balance":          r.Balance,
		"address_line1":    r.AddressLine1,
		"address_line2":    r.AddressLine2,
		"city":             r.City,
		"state":            r.State,
		"postal_code":      r.PostalCode,
		"country":          r.Country,
		"phone":            r.Phone,
		"subject":          r.Subject,
		"note":             r.Note,
		"country_code":     r.CountryCode,
		"balance_impact":   r.BalanceImpact,
	}
}

func rawImportFromRecord(rec Record) (models.RawImportRecord, error) {
	id, ok := rec["id"].(int64)
	if !ok {
		return models.RawImportRecord{}, fmt.Errorf("raw import row has no id")
	}
	stages, _ := rec["stages"].(int64)

	return models.RawImportRecord{
		ID:              id,
		Stages:          models.StageSet(stages),
		Date:            asString(rec["date"]),
		Time:            asString(rec["time"]),
		TimeZone:        asString(rec["time_zone"]),
		Name:            asString(rec["name"]),
		Type:            asString(rec["type"]),
		Status:          asString(rec["status"]),
		Currency:        asString(rec["currency"]),
		Gross:           asString(rec["gross"]),
		Fee:             asString(rec["fee"]),
		Net:             asString(rec["net"]),
		FromEmail:       asString(rec["from_email"]),
		ToEmail:         asString(rec["to_email"]),
		TransactionID:   asString(rec["transaction_id"]),
		ShippingAddress: asString(rec["shipping_address"]),
		AddressStatus:   asString(rec["address_status"]),
		ItemTitle:       asString(rec["item_title"]),
		ItemID:          asString(rec["item_id"]),
		Shipping:        asString(rec["shipping"]),
		InsuranceAmount: asString(rec["insurance_amount"]),
		SalesTax:        asString(rec["sales_tax"]),
		Option1Name:     asString(rec["option1_name"]),
		Option1Value:    asString(rec["option1_value"]),
		Option2Name:     asString(rec["option2_name"]),
		Option2Value:    asString(rec["option2_value"]),
		ReferenceTxnID:  asString(rec["reference_txn_id"]),
		InvoiceNumber:   asString(rec["invoice_number"]),
		CustomNumber:    asString(rec["custom_number"]),
		Quantity:        asString(rec["quantity"]),
		ReceiptID:       asString(rec["receipt_id"]),
		Balance:         asString(rec["balance"]),
		AddressLine1:    asString(rec["address_line1"]),
		AddressLine2:    asString(rec["address_line2"]),
		City:            asString(rec["city"]),
		State:           asString(rec["state"]),
		PostalCode:      asString(rec["postal_code"]),
		Country:         asString(rec["country"]),
		Phone:           asString(rec["phone"]),
		Subject:         asString(rec["subject"]),
		Note:            asString(rec["note"]),
		CountryCode:     asString(rec["country_code"]),
		BalanceImpact:   asString(rec["balance_impact"]),
	}, nil
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

// InsertRawImport persists one CSV line and returns its row id.
func (s *Store) InsertRawImport(r models.RawImportRecord) (int64, error) {
	return s.Insert("raw_imports", rawImportToRecord(r))
}

// RawImports returns the raw import rows matching the predicate in id order.
func (s *Store) RawImports(p Predicate) ([]models.RawImportRecord, error) {
	recs, err := s.Rows("raw_imports", p)
	if err != nil {
		return nil, err
	}
	out := make([]models.RawImportRecord, 0, len(recs))
	for _, rec := range recs {
		r, err := rawImportFromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// MarkStage records a derivation stage as done for the raw row. Stage bits
// are only ever added; a row never loses one.
func (s *Store) MarkStage(row models.RawImportRecord, stage models.Stage) error {
	return s.UpdateByID("raw_imports", row.ID, Record{
		"stages": int64(row.Stages.Mark(stage)),
	})
}
