// Package types provides type definitions for the data shared across the vacancy matching system.
package types

import (
	"github.com/google/uuid"
)

// CodeEntity is one row of a lookup reference table (statuses, language types, ...).
type CodeEntity struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code"`
	NameEn string    `json:"name_en,omitempty"`
	NameFr string    `json:"name_fr,omitempty"`
}

// WFAStatus is a workforce adjustment status. Lower SortOrder means higher match priority.
type WFAStatus struct {
	CodeEntity
	SortOrder int `json:"sort_order"`
}
