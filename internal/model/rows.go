package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Labels used for subtotal and grand total rows.
const (
	GrandDetailLabel   = "GRAND TOTAL"
	GrandSummaryLabel  = "TOTAL"
	GrandPercentLabel  = "TOTAL % Amount"
	merchantTotalLabel = "Total of %s"
)

// MerchantTotalLabel is the detail-sheet label of a per-merchant subtotal row.
func MerchantTotalLabel(merchant string) string {
	return fmt.Sprintf(merchantTotalLabel, merchant)
}

// PercentLabel is the column name for a percent-derived amount, e.g. "3.6% Amount".
func PercentLabel(percent decimal.Decimal) string {
	return percent.String() + "% Amount"
}

// DetailRow is one line of the "Detailed Data" sheet.
type DetailRow struct {
	Merchant      string
	Amount        decimal.Decimal
	Fees          decimal.Decimal
	PercentAmount decimal.Decimal
	PercentLabel  string
}

func (r DetailRow) MarshalJSON() ([]byte, error) {
	return marshalOrdered([]field{
		{"Merchant", r.Merchant},
		{"Amount", r.Amount.InexactFloat64()},
		{"Fees", r.Fees.InexactFloat64()},
		{r.PercentLabel, r.PercentAmount.InexactFloat64()},
	})
}

// SummaryRow is one line of the "Summary" sheet.
type SummaryRow struct {
	Merchant      string
	TotalAmount   decimal.Decimal
	TotalFees     decimal.Decimal
	PercentAmount decimal.Decimal
	PercentLabel  string
}

func (r SummaryRow) MarshalJSON() ([]byte, error) {
	return marshalOrdered([]field{
		{"Merchant", r.Merchant},
		{"Total Amount", r.TotalAmount.InexactFloat64()},
		{"Total Fees", r.TotalFees.InexactFloat64()},
		{r.PercentLabel, r.PercentAmount.InexactFloat64()},
	})
}

type field struct {
	key   string
	value interface{}
}

func marshalOrdered(fields []field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Aggregation is the output of one report computation.
type Aggregation struct {
	Details []DetailRow
	Summary []SummaryRow
}
