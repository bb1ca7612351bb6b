/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package storagemodels

import (
	"strings"
)

// Key identifies a single record by its primary hash key and, for types
// with a composite primary key, an optional range key.
type Key struct {
	Hash  string
	Range *string
}

// Comparator is a range-key comparison operator.
type Comparator string

const (
	ComparatorEqual        Comparator = "="
	ComparatorLessThan     Comparator = "<"
	ComparatorLessEqual    Comparator = "<="
	ComparatorGreaterThan  Comparator = ">"
	ComparatorGreaterEqual Comparator = ">="
	ComparatorBeginsWith   Comparator = "begins_with"
)

// RangeCondition constrains the range attribute of the selected index.
type RangeCondition struct {
	Attribute  string
	Comparator Comparator
	Value      string
}

// Matches reports whether a stored range value satisfies the condition.
func (rc *RangeCondition) Matches(value string) bool {
	switch rc.Comparator {
	case ComparatorEqual:
		return value == rc.Value
	case ComparatorLessThan:
		return value < rc.Value
	case ComparatorLessEqual:
		return value <= rc.Value
	case ComparatorGreaterThan:
		return value > rc.Value
	case ComparatorGreaterEqual:
		return value >= rc.Value
	case ComparatorBeginsWith:
		return strings.HasPrefix(value, rc.Value)
	}
	return false
}

// QueryParams defines parameters for a single scan or query page.
//
// An empty IndexName targets the primary key. An empty HashValue turns
// the operation into a table scan; a non-empty HashValue queries the
// selected index. Cursor resumes a previous page; an empty cursor
// starts from the beginning.
type QueryParams struct {
	// IndexName selects a secondary index descriptor. Empty for the primary key.
	IndexName string
	// HashValue is the index hash key value. Empty means full scan.
	HashValue string
	// Range optionally constrains the index range attribute.
	Range *RangeCondition
	// Filter is applied server-side after key narrowing.
	Filter *Predicate
	// Limit bounds the records evaluated for this page only.
	Limit *int32
	// Cursor resumes pagination. Empty starts from the beginning.
	Cursor string
	// ScanIndexForward specifies index traversal order (default ascending).
	ScanIndexForward *bool
	// AttributesToGet optionally projects the result records.
	AttributesToGet []string
}

// Page is one page of query results. Cursor carries the opaque resume
// token for the next page; an empty Cursor marks exhaustion. A page may
// be empty while Cursor is non-empty, since the page limit is applied
// before filtering.
type Page[T any] struct {
	Items  []T
	Cursor string
}

// Exhausted reports whether the result set has been fully consumed.
func (p *Page[T]) Exhausted() bool {
	return p.Cursor == ""
}
