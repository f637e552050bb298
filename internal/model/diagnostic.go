package model

import (
	"fmt"
	"time"
)

// Diagnostic records a structural problem with one element of a topology.
// The element is skipped; the rest of the translation continues.
type Diagnostic struct {
	Element string `json:"element"` // "node", "wire", "param"
	Index   int    `json:"index"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

func (d Diagnostic) Error() string {
	if d.Name != "" {
		return fmt.Sprintf("%s %d (%s): %s", d.Element, d.Index, d.Name, d.Message)
	}
	return fmt.Sprintf("%s %d: %s", d.Element, d.Index, d.Message)
}

// Translation statuses.
const (
	StatusPending     = "pending"
	StatusTranslating = "translating"
	StatusTranslated  = "translated"
	StatusFailed      = "failed"
)

// Translation is a stored translation run.
type Translation struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Status       string       `json:"status"`
	Topology     *Topology    `json:"topology,omitempty"`
	Descriptor   *Descriptor  `json:"descriptor,omitempty"`
	Dependencies []Dependency `json:"dependencies,omitempty"`
	Workspace    string       `json:"workspace,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// TranslationError is a fatal error recorded for a translation.
type TranslationError struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
