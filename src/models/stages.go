package models

import "strings"

// Stage identifies one derivation pass of the import pipeline. Stored as a
// bitmask on the raw import row so each pass can checkpoint independently.
type Stage uint8

const (
	StageCountry Stage = 1 << iota
	StageCustomer
	StageVendor
	StageSale
	StagePurchase
)

func (s Stage) String() string {
	switch s {
	case StageCountry:
		return "country"
	case StageCustomer:
		return "customer"
	case StageVendor:
		return "vendor"
	case StageSale:
		return "sale"
	case StagePurchase:
		return "purchase"
	}
	return "unknown"
}

// StageSet is the set of derivation stages that have consumed a raw import
// row. Bits only ever get set, never cleared.
type StageSet uint8

// Done reports whether the given stage has already processed the row.
func (s StageSet) Done(stage Stage) bool {
	return s&StageSet(stage) != 0
}

// Mark returns the set with the given stage recorded as done.
func (s StageSet) Mark(stage Stage) StageSet {
	return s | StageSet(stage)
}

func (s StageSet) String() string {
	var done []string
	for _, stage := range []Stage{StageCountry, StageCustomer, StageVendor, StageSale, StagePurchase} {
		if s.Done(stage) {
			done = append(done, stage.String())
		}
	}
	if len(done) == 0 {
		return "unprocessed"
	}
	return strings.Join(done, ",")
}
