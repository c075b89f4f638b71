package models

import "time"

// ErrorColumn labels the single column of a synthetic error result
const ErrorColumn = "Error"

// QueryResult is the uniform tabular form of any executed query.
// An empty result has no columns.
type QueryResult struct {
	Columns      []string
	Rows         [][]string
	RowsAffected uint64
	Duration     time.Duration
}

// EmptyResult returns a result with no columns and no rows
func EmptyResult() QueryResult {
	return QueryResult{}
}

// ErrorResult wraps an execution failure as a one-row, one-column result
func ErrorResult(err error) QueryResult {
	return QueryResult{
		Columns: []string{ErrorColumn},
		Rows:    [][]string{{err.Error()}},
	}
}

// IsEmpty reports whether the result carries no columns
func (r QueryResult) IsEmpty() bool {
	return len(r.Columns) == 0
}

// IsError reports whether the result is a synthetic error result
func (r QueryResult) IsError() bool {
	return len(r.Columns) == 1 && r.Columns[0] == ErrorColumn && len(r.Rows) == 1
}
