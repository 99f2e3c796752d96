package model

import "fmt"

// ApprovalStatus is the visibility state of an Event.
type ApprovalStatus string

const (
	ApprovalStatusApproved  ApprovalStatus = "APPROVED"
	ApprovalStatusPending   ApprovalStatus = "PENDING"
	ApprovalStatusCancelled ApprovalStatus = "CANCELLED"
)

// ApprovalStatuses lists every accepted value, in declaration order.
var ApprovalStatuses = []ApprovalStatus{
	ApprovalStatusApproved,
	ApprovalStatusPending,
	ApprovalStatusCancelled,
}

// Valid reports whether s is one of the three declared statuses.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalStatusApproved, ApprovalStatusPending, ApprovalStatusCancelled:
		return true
	}
	return false
}

// ParseApprovalStatus converts a raw string into an ApprovalStatus.
func ParseApprovalStatus(raw string) (ApprovalStatus, error) {
	s := ApprovalStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown approval status %q", raw)
	}
	return s, nil
}

// CanTransitionTo reports whether the guarded approve/cancel operations
// may move an event from s to next. CANCELLED is terminal.
func (s ApprovalStatus) CanTransitionTo(next ApprovalStatus) bool {
	switch s {
	case ApprovalStatusPending:
		return next == ApprovalStatusApproved || next == ApprovalStatusCancelled
	case ApprovalStatusApproved:
		return next == ApprovalStatusCancelled
	default:
		return false
	}
}

// SortOrder is the direction of an ordering clause.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// NullsOrder places NULL values before or after the rest.
type NullsOrder string

const (
	NullsFirst NullsOrder = "first"
	NullsLast  NullsOrder = "last"
)

// QueryMode selects case sensitivity for string predicates.
type QueryMode string

const (
	QueryModeDefault     QueryMode = "default"
	QueryModeInsensitive QueryMode = "insensitive"
)
