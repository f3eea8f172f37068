package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Row is the fixed-shape record produced from one spreadsheet row at ingestion.
// Field-name fallbacks are resolved once here; absent or unparseable numbers are zero.
type Row struct {
	Merchant string
	// Amount is the withdrawal amount, falling back to the deposit amount.
	Amount decimal.Decimal
	// Fee is the withdrawal fee, falling back to the deposit fee.
	Fee decimal.Decimal

	DepositAmount    decimal.Decimal
	DepositFee       decimal.Decimal
	WithdrawalAmount decimal.Decimal
	WithdrawalFee    decimal.Decimal

	RawDate  string
	DateOnly string // YYYY-MM-DD or empty
}

// PanelAmount returns the amount and fee from the panel-specific columns only.
func (r Row) PanelAmount(p PanelType) (amount, fee decimal.Decimal) {
	if p == Withdrawal {
		return r.WithdrawalAmount, r.WithdrawalFee
	}
	return r.DepositAmount, r.DepositFee
}

// InRange reports whether DateOnly lies in [start, end]. Rows without a date never match.
func (r Row) InRange(start, end string) bool {
	return r.DateOnly != "" && r.DateOnly >= start && r.DateOnly <= end
}

// Dataset is the parsed content of one upload for a panel type.
type Dataset struct {
	ID           string
	PanelType    PanelType
	OriginalName string
	FilePath     string
	Checksum     string
	Merchants    []string
	Rows         []Row
	CreatedAt    time.Time
}

// Report records one generate action. It is never modified after creation.
type Report struct {
	ID               int          `json:"id"`
	PanelType        PanelType    `json:"panelType"`
	StartDate        string       `json:"startDate"`
	EndDate          string       `json:"endDate"`
	MerchantPercents Percents     `json:"merchantPercents"`
	Summary          []SummaryRow `json:"summary"`
	FileName         string       `json:"fileName"`
	DownloadURL      string       `json:"downloadUrl"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// TotalRow returns the grand total summary row, if present.
func (r Report) TotalRow() (SummaryRow, bool) {
	for _, row := range r.Summary {
		if row.Merchant == GrandSummaryLabel {
			return row, true
		}
	}
	return SummaryRow{}, false
}

// MerchantTotal is the ephemeral preview accumulator for one merchant.
type MerchantTotal struct {
	Amount decimal.Decimal
	Fees   decimal.Decimal
}

func (m MerchantTotal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount float64 `json:"amount"`
		Fees   float64 `json:"fees"`
	}{m.Amount.InexactFloat64(), m.Fees.InexactFloat64()})
}

// MerchantActivity is one (merchant, panel) entry of the all-merchants view.
type MerchantActivity struct {
	Merchant         string
	Type             PanelType
	TotalAmount      decimal.Decimal
	TotalFees        decimal.Decimal
	TransactionCount int
	LastUpdated      time.Time
}

func (m MerchantActivity) MarshalJSON() ([]byte, error) {
	type wire struct {
		Merchant         string    `json:"Merchant"`
		Type             PanelType `json:"Type"`
		TotalAmount      float64   `json:"TotalAmount"`
		TotalFees        float64   `json:"TotalFees"`
		TransactionCount int       `json:"TransactionCount"`
		LastUpdated      time.Time `json:"LastUpdated"`
	}
	return json.Marshal(wire{
		Merchant:         m.Merchant,
		Type:             m.Type,
		TotalAmount:      m.TotalAmount.InexactFloat64(),
		TotalFees:        m.TotalFees.InexactFloat64(),
		TransactionCount: m.TransactionCount,
		LastUpdated:      m.LastUpdated,
	})
}
