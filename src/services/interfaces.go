package services

import (
	"errors"
	"fmt"
)

// ErrParsingFailed wraps any failure while reading the CSV file.
var ErrParsingFailed = errors.New("error parsing file")

// ImportResult holds the aggregated counters from one pipeline run.
type ImportResult struct {
	RunUUID   string `json:"run_uuid"`
	Accepted  int    `json:"accepted"`
	Rejected  int    `json:"rejected"`
	Countries int    `json:"countries"`
	Customers int    `json:"customers"`
	Vendors   int    `json:"vendors"`
	Sales     int    `json:"sales"`
	Purchases int    `json:"purchases"`
}

// Summary renders the result the way it is shown to the user.
func (r *ImportResult) Summary() string {
	text := "Imported records:\n"
	text += fmt.Sprintf("   %d country codes\n", r.Countries)
	text += fmt.Sprintf("   %d unique customer entries\n", r.Customers)
	text += fmt.Sprintf("   %d unique vendor entries\n", r.Vendors)
	text += fmt.Sprintf("   %d sale entries\n", r.Sales)
	text += fmt.Sprintf("   %d purchase entries\n", r.Purchases)
	text += fmt.Sprintf("   %d CSV lines accepted\n", r.Accepted)
	text += fmt.Sprintf("   %d CSV lines rejected\n", r.Rejected)
	return text
}

// Notifier is the surface the surrounding UI provides: a success summary, a
// per-stage "nothing to import" notice and a single generic failure message.
type Notifier interface {
	Summary(result *ImportResult)
	Info(msg string)
	Error(msg string)
}

// ImportService runs the whole import pipeline as one unit of work.
type ImportService interface {
	ImportFile(path string) (*ImportResult, error)
}
