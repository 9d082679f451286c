// src/parsers/paypal/parser.go
package paypal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/username/paybook/src/models"
)

// numFields is the fixed column count of a PayPal transaction export.
const numFields = 41

// ErrNotPayPalExport is returned when the header row does not look like a
// PayPal transaction export.
var ErrNotPayPalExport = errors.New("file is not a PayPal CSV export")

// MalformedRowError reports a data row that does not match the export legend.
type MalformedRowError struct {
	Line   int // 1-based line in the file
	Fields int
	Err    error
}

func (e *MalformedRowError) Error() string {
	if e.Fields > 0 {
		return fmt.Sprintf("malformed row at line %d: %d fields, want %d", e.Line, e.Fields, numFields)
	}
	return fmt.Sprintf("malformed row at line %d: %v", e.Line, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

type PayPalParser struct{}

func NewParser() *PayPalParser {
	return &PayPalParser{}
}

// Parse reads a PayPal transaction export and returns one record per data
// row, all derivation stages pending. The header row is validated the way
// the export format is recognized: its second column must literally be
// "Time". Every data row must carry exactly 41 fields; a short or long row
// aborts the whole parse with its line number.
func (p *PayPalParser) Parse(file io.Reader) ([]models.RawImportRecord, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < 2 || header[1] != "Time" {
		return nil, ErrNotPayPalExport
	}

	var records []models.RawImportRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &MalformedRowError{Line: parseErr.Line, Err: err}
			}
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if len(row) != numFields {
			// FieldPos gives the physical line the record starts on, which
			// lags the record count once a quoted field spans lines.
			line, _ := reader.FieldPos(0)
			return nil, &MalformedRowError{Line: line, Fields: len(row)}
		}
		records = append(records, recordFromRow(row))
	}

	return records, nil
}

// recordFromRow zips a data row against the export legend positionally.
func recordFromRow(row []string) models.RawImportRecord {
	return models.RawImportRecord{
		Date:            row[0],
		Time:            row[1],
		TimeZone:        row[2],
		Name:            row[3],
		Type:            row[4],
		Status:          row[5],
		Currency:        row[6],
		Gross:           row[7],
		Fee:             row[8],
		Net:             row[9],
		FromEmail:       row[10],
		ToEmail:         row[11],
		TransactionID:   row[12],
		ShippingAddress: row[13],
		AddressStatus:   row[14],
		ItemTitle:       row[15],
		ItemID:          row[16],
		Shipping:        row[17],
		InsuranceAmount: row[18],
		SalesTax:        row[19],
		Option1Name:     row[20],
		Option1Value:    row[21],
		Option2Name:     row[22],
		Option2Value:    row[23],
		ReferenceTxnID:  row[24],
		InvoiceNumber:   row[25],
		CustomNumber:    row[26],
		Quantity:        row[27],
		ReceiptID:       row[28],
		Balance:         row[29],
		AddressLine1:    row[30],
		AddressLine2:    row[31],
		City:            row[32],
		State:           row[33],
		PostalCode:      row[34],
		Country:         row[35],
		Phone:           row[36],
		Subject:         row[37],
		Note:            row[38],
		CountryCode:     row[39],
		BalanceImpact:   row[40],
	}
}
