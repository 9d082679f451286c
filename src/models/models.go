package models

import "time"

// RawImportRecord represents a single line from a PayPal CSV export. All 41
// export columns are kept as raw text; typed values are derived later by the
// pipeline stages. Stages records which derivation passes have consumed the
// row.
type RawImportRecord struct {
	ID     int64    `json:"id,omitempty"`
	Stages StageSet `json:"stages"`

	Date            string `json:"date"`
	Time            string `json:"time"`
	TimeZone        string `json:"time_zone"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	Status          string `json:"status"`
	Currency        string `json:"currency"`
	Gross           string `json:"gross"`
	Fee             string `json:"fee"`
	Net             string `json:"net"`
	FromEmail       string `json:"from_email"`
	ToEmail         string `json:"to_email"`
	TransactionID   string `json:"transaction_id"`
	ShippingAddress string `json:"shipping_address"`
	AddressStatus   string `json:"address_status"`
	ItemTitle       string `json:"item_title"`
	ItemID          string `json:"item_id"`
	Shipping        string `json:"shipping"`
	InsuranceAmount string `json:"insurance_amount"`
	SalesTax        string `json:"sales_tax"`
	Option1Name     string `json:"option1_name"`
	Option1Value    string `json:"option1_value"`
	Option2Name     string `json:"option2_name"`
	Option2Value    string `json:"option2_value"`
	ReferenceTxnID  string `json:"reference_txn_id"`
	InvoiceNumber   string `json:"invoice_number"`
	CustomNumber    string `json:"custom_number"`
	Quantity        string `json:"quantity"`
	ReceiptID       string `json:"receipt_id"`
	Balance         string `json:"balance"`
	AddressLine1    string `json:"address_line1"`
	AddressLine2    string `json:"address_line2"`
	City            string `json:"city"`
	State           string `json:"state"`
	PostalCode      string `json:"postal_code"`
	Country         string `json:"country"`
	Phone           string `json:"phone"`
	Subject         string `json:"subject"`
	Note            string `json:"note"`
	CountryCode     string `json:"country_code"`
	BalanceImpact   string `json:"balance_impact"`
}

// Country is a lookup row created lazily from the raw import. Never updated
// or deleted by the pipeline.
type Country struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"` // ISO code, the dedup key
}

// Customer is a contact entity derived from credit-side raw rows. Name is the
// dedup key; the first sighting wins and later rows never update it.
type Customer struct {
	ID            int64  `json:"id,omitempty"`
	DateCreated   string `json:"date_created"`
	Name          string `json:"name"`
	Address1      string `json:"address1"`
	Address2      string `json:"address2"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	EmailAddress  string `json:"email_address"`
	EmailStatusID int64  `json:"email_status_id"`
	PhoneNumber   string `json:"phone_number"`
	PhoneStatusID int64  `json:"phone_status_id"`
	Description   string `json:"description"`
	Notes         string `json:"notes"`
	CountryID     int64  `json:"country_id"`
	ClassID       int64  `json:"class_id"`
}

// Vendor is a contact entity derived from debit-side raw rows. Same
// lazy-create-once semantics as Customer.
type Vendor struct {
	ID            int64  `json:"id,omitempty"`
	DateCreated   string `json:"date_created"`
	Name          string `json:"name"`
	ContactName   string `json:"contact_name"`
	EmailAddress  string `json:"email_address"`
	EmailStatusID int64  `json:"email_status_id"`
	PhoneNumber   string `json:"phone_number"`
	PhoneStatusID int64  `json:"phone_status_id"`
	Description   string `json:"description"`
	Notes         string `json:"notes"`
	TypeID        int64  `json:"type_id"`
}

// SaleRecord is one sale derived from a customer-resolved credit row.
// Committed is reserved for a later reconciliation step; the import pipeline
// never sets it.
type SaleRecord struct {
	ID              int64   `json:"id,omitempty"`
	Date            string  `json:"date"`
	CustomerID      int64   `json:"customer_id"`
	RawImportID     int64   `json:"raw_import_id"`
	StatusID        int64   `json:"status_id"`
	TransactionUUID string  `json:"transaction_uuid"`
	Gross           float64 `json:"gross"`
	Fees            float64 `json:"fees"`
	Shipping        float64 `json:"shipping"`
	Notes           string  `json:"notes"`
	Committed       bool    `json:"committed"`
}

// PurchaseRecord is one purchase derived from a vendor-resolved debit row.
type PurchaseRecord struct {
	ID              int64   `json:"id,omitempty"`
	Date            string  `json:"date"`
	VendorID        int64   `json:"vendor_id"`
	RawImportID     int64   `json:"raw_import_id"`
	StatusID        int64   `json:"status_id"`
	TypeID          int64   `json:"type_id"`
	TransactionUUID string  `json:"transaction_uuid"`
	Gross           float64 `json:"gross"`
	Tax             float64 `json:"tax"`
	Shipping        float64 `json:"shipping"`
	Notes           string  `json:"notes"`
	Committed       bool    `json:"committed"`
}

// ImportRun records one invocation of the import pipeline.
type ImportRun struct {
	ID         int64      `json:"id,omitempty"`
	RunUUID    string     `json:"run_uuid"`
	FileName   string     `json:"file_name"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Status     string     `json:"status"` // "running", "completed" or "failed"
	Accepted   int        `json:"accepted"`
	Rejected   int        `json:"rejected"`
	Countries  int        `json:"countries"`
	Customers  int        `json:"customers"`
	Vendors    int        `json:"vendors"`
	Sales      int        `json:"sales"`
	Purchases  int        `json:"purchases"`
	Error      string     `json:"error,omitempty"`
}
