// Package domain defines the core types and interfaces for the comment cleaning job
package domain

import (
	"time"

	"judolguard/internal/core/cleaner"
)

// DefaultTextColumn is the CSV column holding the comment text
const DefaultTextColumn = "comment_text"

// RawColumn is appended to the output header when the raw text is kept
const RawColumn = "original_text"

// Record is one CSV data row
type Record struct {
	Line   int // 1-based, header excluded
	Fields []string
}

// Field returns the value at i or "" for short rows
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// Cleaned is a record that survived cleaning and filtering
type Cleaned struct {
	Record   Record
	Raw      string
	Text     string
	Analysis *cleaner.Analysis // set when reports are written
}

// Drop tells why a record was not written
type Drop string

const (
	// DropNone keeps the record
	DropNone Drop = ""
	// DropEmpty means nothing survived cleaning
	DropEmpty Drop = "empty"
	// DropSingleWord means the cleaned text is one word
	DropSingleWord Drop = "single_word"
	// DropTimestamp means the raw text carries a video timestamp like 12:34
	DropTimestamp Drop = "timestamp"
	// DropNumeric means the cleaned text is only digits
	DropNumeric Drop = "numeric"
)

// Filters are the optional row filters, all off by default
type Filters struct {
	SingleWord bool
	Timestamps bool
	Numeric    bool
}

// Input controls one run
type Input struct {
	Source     string // name recorded with the run, usually the input path
	TextColumn string
	Workers    int
	BatchSize  int
	KeepRaw    bool
	Filters    Filters
	Reports    bool // compute a per-comment Analysis for report sinks
}

// Layout locates the columns a run needs in the input header
type Layout struct {
	Header    []string
	Text      int
	CommentID int // -1 when absent
	VideoID   int // -1 when absent
}

// Summary describes a finished run
type Summary struct {
	RunID           string    `json:"run_id"`
	Source          string    `json:"source"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	Read            int       `json:"read"`
	Written         int       `json:"written"`
	DroppedEmpty    int       `json:"dropped_empty"`
	DroppedFiltered int       `json:"dropped_filtered"`
	StageFailures   int       `json:"stage_failures"`
	Options         string    `json:"options"`
}

// EmptyRatio is the share of read rows that cleaned to nothing
func (s Summary) EmptyRatio() float64 {
	if s.Read == 0 {
		return 0
	}
	return float64(s.DroppedEmpty) / float64(s.Read)
}
