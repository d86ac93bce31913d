package compare

import (
	"time"

	"dbcompare/core/database"
)

// Side names one of the two databases being compared.
type Side string

const (
	SideOld Side = "old"
	SideNew Side = "new"
)

// ErrorKind classifies a per-table failure.
type ErrorKind string

const (
	KindNone       ErrorKind = ""
	KindConnection ErrorKind = "connection"
	KindQuery      ErrorKind = "query"
	KindStorage    ErrorKind = "storage"
)

// Result is the outcome of one table: either a mismatch count, an exclusion or an error.
type Result struct {
	// Table is the compared table.
	Table database.Table `json:"table"`

	// Mismatches counts old side rows whose fingerprint is absent on the new side.
	Mismatches int64 `json:"mismatches"`

	// Excluded is set when an exclusion pattern skipped the table.
	Excluded bool `json:"excluded,omitempty"`

	// ExcludedBy is the pattern that excluded the table.
	ExcludedBy string `json:"excluded_by,omitempty"`

	// Err is the failure of the table, nil on success.
	Err error `json:"-"`

	// Error is the message of Err, for serialized reports.
	Error string `json:"error,omitempty"`

	// Kind classifies Err.
	Kind ErrorKind `json:"kind,omitempty"`

	// Duration is the time spent on the table.
	Duration time.Duration `json:"duration"`
}

// Failed reports whether the table errored.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Summary aggregates a full comparison run.
type Summary struct {
	// RunID identifies the run in the log sink.
	RunID string `json:"run_id"`

	// Started and Finished delimit the run.
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`

	// Tables is the number of enumerated tables.
	Tables int `json:"tables"`

	// Compared counts tables compared successfully.
	Compared int `json:"compared"`

	// Excluded counts tables skipped by exclusion patterns.
	Excluded int `json:"excluded"`

	// Failed counts tables that errored.
	Failed int `json:"failed"`

	// TotalMismatches sums the mismatches of successfully compared tables.
	TotalMismatches int64 `json:"total_mismatches"`

	// Results holds one entry per enumerated table, in enumeration order.
	Results []Result `json:"results"`
}

// TableStatus describes an enumerated table and whether it would be compared.
type TableStatus struct {
	Table      database.Table `json:"table"`
	Excluded   bool           `json:"excluded"`
	ExcludedBy string         `json:"excluded_by,omitempty"`
}

func (s *Summary) add(r Result) {
	switch {
	case r.Excluded:
		s.Excluded++
	case r.Failed():
		s.Failed++
	default:
		s.Compared++
		s.TotalMismatches += r.Mismatches
	}
}
