package services

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/paybook/src/database"
	"github.com/username/paybook/src/logger"
	"github.com/username/paybook/src/models"
	"github.com/username/paybook/src/parsers"
	"github.com/username/paybook/src/processors"
	"github.com/username/paybook/src/utils"
)

var legend = []string{
	"Date", "Time", "TimeZone", "Name", "Type", "Status", "Currency", "Gross",
	"Fee", "Net", "FromEmail", "ToEmail", "TransactionID", "ShippingAddress",
	"AddressStatus", "ItemTitle", "ItemID", "Shipping", "InsuranceAmount",
	"SalesTax", "Option1Name", "Option1Value", "Option2Name", "Option2Value",
	"ReferenceTxnID", "InvoiceNumber", "CustomNumber", "Quantity", "ReceiptID",
	"Balance", "AddressLine1", "AddressLine2", "City", "State", "PostalCode",
	"Country", "Phone", "Subject", "Note", "CountryCode", "BalanceImpact",
}

// column indices used by the test rows
const (
	colDate          = 0
	colName          = 3
	colType          = 4
	colGross         = 7
	colFee           = 8
	colTransactionID = 12
	colItemTitle     = 15
	colSalesTax      = 19
	colCountry       = 35
	colSubject       = 37
	colCountryCode   = 39
	colBalanceImpact = 40
)

type recordingNotifier struct {
	summaries []*ImportResult
	infos     []string
	errors    []string
}

func (n *recordingNotifier) Summary(result *ImportResult) { n.summaries = append(n.summaries, result) }
func (n *recordingNotifier) Info(msg string)              { n.infos = append(n.infos, msg) }
func (n *recordingNotifier) Error(msg string)             { n.errors = append(n.errors, msg) }

type testHarness struct {
	store    *database.Store
	service  ImportService
	notifier *recordingNotifier
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	logger.InitLogger("error")

	store, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.DB().Close() })

	amounts, err := utils.NewAmountConverter("en-US")
	require.NoError(t, err)

	parser, err := parsers.GetParser("paypal")
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	service := NewImportService(
		store,
		parser,
		processors.NewCountryProcessor(),
		processors.NewCustomerProcessor(),
		processors.NewVendorProcessor(),
		processors.NewSaleProcessor(amounts),
		processors.NewPurchaseProcessor(amounts),
		notifier,
	)

	return &testHarness{store: store, service: service, notifier: notifier}
}

func row(fields map[int]string) []string {
	out := make([]string, len(legend))
	for idx, v := range fields {
		out[idx] = v
	}
	return out
}

func writeCSV(t *testing.T, rows ...[]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paypal.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write(legend))
	for _, r := range rows {
		require.NoError(t, w.Write(r))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return path
}

func rowAlice() []string {
	return row(map[int]string{
		colDate: "01/15/2024", colName: "Alice", colType: "Website Payment",
		colGross: "100.00", colFee: "-3.20", colTransactionID: "T1",
		colItemTitle: "Widget", colSubject: "order 42",
		colCountry: "United States", colCountryCode: "US", colBalanceImpact: "Credit",
	})
}

func rowBobsShop() []string {
	return row(map[int]string{
		colDate: "01/16/2024", colName: "Bob's Shop",
		colGross: "50.00", colTransactionID: "T2",
		colItemTitle: "Widgets", colSalesTax: "4.13", colBalanceImpact: "Debit",
	})
}

func countRows(t *testing.T, st *database.Store, table string) int {
	t.Helper()
	rows, err := st.Rows(table, database.Where())
	require.NoError(t, err)
	return len(rows)
}

func TestImportEndToEnd(t *testing.T) {
	h := newHarness(t)
	path := writeCSV(t, rowAlice(), rowBobsShop())

	result, err := h.service.ImportFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Accepted)
	assert.Equal(t, 0, result.Rejected)
	assert.Equal(t, 1, result.Countries)
	assert.Equal(t, 1, result.Customers)
	assert.Equal(t, 1, result.Vendors)
	assert.Equal(t, 1, result.Sales)
	assert.Equal(t, 1, result.Purchases)

	assert.Equal(t, 1, countRows(t, h.store, "countries"))
	assert.Equal(t, 1, countRows(t, h.store, "customers"))
	assert.Equal(t, 1, countRows(t, h.store, "vendors"))

	sales, err := h.store.Rows("sale_records", database.Where())
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, 100.00, sales[0]["gross"])
	assert.Equal(t, int64(0), sales[0]["committed"])

	purchases, err := h.store.Rows("purchase_records", database.Where())
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, 50.00, purchases[0]["gross"])
	assert.Equal(t, int64(0), purchases[0]["committed"])

	require.Len(t, h.notifier.summaries, 1)
	assert.Empty(t, h.notifier.errors)
}

func TestImportIsIdempotent(t *testing.T) {
	h := newHarness(t)
	path := writeCSV(t, rowAlice(), rowBobsShop())

	_, err := h.service.ImportFile(path)
	require.NoError(t, err)

	second, err := h.service.ImportFile(path)
	require.NoError(t, err)

	assert.Equal(t, 0, second.Accepted, "every line is a duplicate on re-import")
	assert.Equal(t, 2, second.Rejected)
	assert.Equal(t, 0, second.Countries)
	assert.Equal(t, 0, second.Customers)
	assert.Equal(t, 0, second.Vendors)
	assert.Equal(t, 0, second.Sales)
	assert.Equal(t, 0, second.Purchases)

	assert.Equal(t, 1, countRows(t, h.store, "countries"))
	assert.Equal(t, 1, countRows(t, h.store, "customers"))
	assert.Equal(t, 1, countRows(t, h.store, "vendors"))
	assert.Equal(t, 1, countRows(t, h.store, "sale_records"))
	assert.Equal(t, 1, countRows(t, h.store, "purchase_records"))
}

func TestImportDedupKeyIsTransactionID(t *testing.T) {
	h := newHarness(t)

	_, err := h.service.ImportFile(writeCSV(t, rowAlice()))
	require.NoError(t, err)

	// Same TransactionID, different name: still a duplicate.
	renamed := rowAlice()
	renamed[colName] = "Alice2"
	second, err := h.service.ImportFile(writeCSV(t, renamed))
	require.NoError(t, err)

	assert.Equal(t, 0, second.Accepted)
	assert.Equal(t, 1, second.Rejected)
	assert.Equal(t, 1, countRows(t, h.store, "customers"), "no second customer for the renamed duplicate")
}

func TestImportFlagsAreMonotonic(t *testing.T) {
	h := newHarness(t)
	path := writeCSV(t, rowAlice(), rowBobsShop())

	_, err := h.service.ImportFile(path)
	require.NoError(t, err)

	before, err := h.store.RawImports(database.Where())
	require.NoError(t, err)

	_, err = h.service.ImportFile(path)
	require.NoError(t, err)

	after, err := h.store.RawImports(database.Where())
	require.NoError(t, err)
	require.Equal(t, len(before), len(after))

	for i := range before {
		// A second run may add bits but never clear one.
		assert.Equal(t, before[i].Stages, before[i].Stages&after[i].Stages,
			"row %d lost a stage bit", before[i].ID)
	}
}

func TestImportSaleGating(t *testing.T) {
	h := newHarness(t)
	path := writeCSV(t, rowAlice(), rowBobsShop())

	_, err := h.service.ImportFile(path)
	require.NoError(t, err)

	rows, err := h.store.RawImports(database.Where())
	require.NoError(t, err)
	for _, r := range rows {
		if r.Stages.Done(models.StageSale) {
			assert.True(t, r.Stages.Done(models.StageCustomer),
				"sale derived from a row without a resolved customer")
		}
		if r.Stages.Done(models.StagePurchase) {
			assert.True(t, r.Stages.Done(models.StageVendor),
				"purchase derived from a row without a resolved vendor")
		}
	}
}

func TestImportBadHeaderFailsWholeRun(t *testing.T) {
	h := newHarness(t)

	path := filepath.Join(t.TempDir(), "not-paypal.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,NotTime,Name\none,two,three\n"), 0o644))

	_, err := h.service.ImportFile(path)
	require.ErrorIs(t, err, ErrParsingFailed)
	require.Len(t, h.notifier.errors, 1)

	assert.Equal(t, 0, countRows(t, h.store, "raw_imports"), "nothing is committed on a format error")
}

func TestImportMalformedRowAbortsBeforeIngest(t *testing.T) {
	h := newHarness(t)

	path := filepath.Join(t.TempDir(), "short.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.Write(legend))
	require.NoError(t, w.Write(rowAlice()))
	require.NoError(t, w.Write([]string{"too", "short"}))
	w.Flush()
	require.NoError(t, w.Error())
	require.NoError(t, f.Close())

	_, err = h.service.ImportFile(path)
	require.ErrorIs(t, err, ErrParsingFailed)
	assert.Contains(t, err.Error(), "line 3")

	// The parse fails before anything reaches the database.
	assert.Equal(t, 0, countRows(t, h.store, "raw_imports"))
}

func TestImportEmptyStagesNotify(t *testing.T) {
	h := newHarness(t)

	// Only a debit row: the customer and sale stages have nothing to scan.
	_, err := h.service.ImportFile(writeCSV(t, rowBobsShop()))
	require.NoError(t, err)

	assert.Contains(t, h.notifier.infos, "There are no customer contacts to import.")
	assert.Contains(t, h.notifier.infos, "There are no sales transactions to import.")
}

func TestImportRecordsRun(t *testing.T) {
	h := newHarness(t)

	result, err := h.service.ImportFile(writeCSV(t, rowAlice(), rowBobsShop()))
	require.NoError(t, err)

	runs, err := h.store.ImportRuns(5)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, result.RunUUID, run.RunUUID)
	assert.Equal(t, "completed", run.Status)
	assert.Equal(t, "paypal.csv", run.FileName)
	assert.Equal(t, 2, run.Accepted)
	assert.Equal(t, 1, run.Sales)
	assert.Equal(t, 1, run.Purchases)
	require.NotNil(t, run.FinishedAt)
}

func TestImportAuditInsertFailureNotifies(t *testing.T) {
	h := newHarness(t)
	path := writeCSV(t, rowAlice())

	// Closing the handle makes the audit-row insert fail before anything is
	// parsed; the user still gets the generic failure message.
	require.NoError(t, h.store.DB().Close())

	_, err := h.service.ImportFile(path)
	require.Error(t, err)
	require.Len(t, h.notifier.errors, 1)
	assert.Contains(t, h.notifier.errors[0], "Could not import file")
}

func TestImportFailedRunIsRecorded(t *testing.T) {
	h := newHarness(t)

	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,NotTime\n"), 0o644))

	_, err := h.service.ImportFile(path)
	require.Error(t, err)

	runs, err := h.store.ImportRuns(5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "failed", runs[0].Status)
	assert.NotEmpty(t, runs[0].Error)
}

func TestSummaryText(t *testing.T) {
	r := &ImportResult{Countries: 1, Customers: 2, Vendors: 3, Sales: 4, Purchases: 5, Accepted: 6, Rejected: 7}
	text := r.Summary()
	assert.Contains(t, text, "1 country codes")
	assert.Contains(t, text, "2 unique customer entries")
	assert.Contains(t, text, "3 unique vendor entries")
	assert.Contains(t, text, "4 sale entries")
	assert.Contains(t, text, "5 purchase entries")
	assert.Contains(t, text, "6 CSV lines accepted")
	assert.Contains(t, text, "7 CSV lines rejected")
}
