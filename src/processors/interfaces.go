package processors

import (
	"github.com/username/paybook/src/database"
	"github.com/username/paybook/src/models"
)

// StageProcessor is one derivation pass of the import pipeline. Process scans
// the raw rows its stage has not yet consumed, derives records from them and
// marks them done. It reports how many records it created and how many
// pending rows it scanned.
//
// Stages are flag-gated: each one queries on the stage bits earlier stages
// set, so the run order in the import service is a correctness dependency.
type StageProcessor interface {
	Stage() models.Stage
	Process(st *database.Store) (created, pending int, err error)

	// EmptyNotice is the user-facing message when the stage finds nothing
	// pending, or "" if the stage runs silently.
	EmptyNotice() string
}

// Balance impact values as PayPal writes them.
const (
	balanceCredit = "Credit"
	balanceDebit  = "Debit"
)

// paypalCounterparty is the Name PayPal puts on its own fee and transfer
// lines. Those rows are intentionally never turned into vendors or
// purchases, so the vendor stage leaves them pending forever.
const paypalCounterparty = "PayPal"
