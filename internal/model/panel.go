package model

import (
	"fmt"
	"strings"
)

// PanelType is one of the two transaction categories, each with its own dataset slot.
type PanelType string

const (
	Deposit    PanelType = "Deposit"
	Withdrawal PanelType = "Withdrawal"
)

// PanelTypes lists the panels in display order.
var PanelTypes = []PanelType{Deposit, Withdrawal}

// ParsePanelType accepts exactly "Deposit" or "Withdrawal".
func ParsePanelType(s string) (PanelType, error) {
	switch PanelType(strings.TrimSpace(s)) {
	case Deposit:
		return Deposit, nil
	case Withdrawal:
		return Withdrawal, nil
	}
	return "", NewValidationError(fmt.Sprintf(MsgInvalidPanelType, s))
}

// Slug is the lowercased form used in generated file names.
func (p PanelType) Slug() string {
	return strings.ToLower(string(p))
}

// PanelID is the numeric slot used for the saved upload copy (1=Deposit, 2=Withdrawal).
func (p PanelType) PanelID() string {
	if p == Withdrawal {
		return "2"
	}
	return "1"
}

func (p PanelType) String() string { return string(p) }
