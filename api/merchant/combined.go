package merchant

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"MerchantReports/api/constants"
	"MerchantReports/internal/model"
	"MerchantReports/internal/sheet"
)

// CombinedEntry is one merchant of the combined summary: upload totals merged
// with the figures of the most recent report that included the merchant.
type CombinedEntry struct {
	Merchant         string          `json:"merchant"`
	Type             model.PanelType `json:"type"`
	TransactionCount int             `json:"transactionCount"`
	TotalAmount      float64         `json:"totalAmount"`
	TotalFees        float64         `json:"totalFees"`
	Percentage       float64         `json:"percentage"`
	CalculatedAmount float64         `json:"calculatedAmount"`
	Status           string          `json:"status"`
	LastUpdated      time.Time       `json:"lastUpdated"`
}

type CombinedTotals struct {
	Reports             int     `json:"reports"`
	DepositMerchants    int     `json:"depositMerchants"`
	WithdrawalMerchants int     `json:"withdrawalMerchants"`
	TotalDeposits       float64 `json:"totalDeposits"`
	TotalWithdrawals    float64 `json:"totalWithdrawals"`
	TotalCalculated     float64 `json:"totalCalculated"`
}

type CombinedSummary struct {
	Merchants []CombinedEntry `json:"merchants"`
	Totals    CombinedTotals  `json:"totals"`
}

// CombinedFilter narrows the merchant list. Totals are not filtered.
type CombinedFilter struct {
	Search string
	Panel  model.PanelType
}

func (f CombinedFilter) match(e CombinedEntry) bool {
	if f.Panel != "" && e.Type != f.Panel {
		return false
	}
	return strings.Contains(strings.ToLower(e.Merchant), strings.ToLower(f.Search))
}

// Combine merges the all-merchants view with report results. Later reports
// override earlier ones for the same merchant and panel.
func Combine(activity []model.MerchantActivity, reports []model.Report, f CombinedFilter) CombinedSummary {
	type key struct {
		merchant string
		panel    model.PanelType
	}
	type calc struct {
		amount, percent decimal.Decimal
	}

	var (
		out                          CombinedSummary
		deposits, withdrawals, calcd decimal.Decimal
	)
	latest := make(map[key]calc)
	for _, r := range reports {
		for _, row := range r.Summary {
			if row.Merchant == model.GrandSummaryLabel {
				if r.PanelType == model.Deposit {
					deposits = deposits.Add(row.TotalAmount)
				} else {
					withdrawals = withdrawals.Add(row.TotalAmount)
				}
				calcd = calcd.Add(row.PercentAmount)
				continue
			}
			latest[key{row.Merchant, r.PanelType}] = calc{
				amount:  row.PercentAmount,
				percent: r.MerchantPercents.Lookup(row.Merchant),
			}
		}
	}

	out.Merchants = []CombinedEntry{}
	for _, a := range activity {
		if a.Type == model.Deposit {
			out.Totals.DepositMerchants++
		} else {
			out.Totals.WithdrawalMerchants++
		}
		c := latest[key{a.Merchant, a.Type}]
		e := CombinedEntry{
			Merchant:         a.Merchant,
			Type:             a.Type,
			TransactionCount: a.TransactionCount,
			TotalAmount:      a.TotalAmount.InexactFloat64(),
			TotalFees:        a.TotalFees.InexactFloat64(),
			Percentage:       c.percent.InexactFloat64(),
			CalculatedAmount: c.amount.InexactFloat64(),
			Status:           constants.StatusAvailable,
			LastUpdated:      a.LastUpdated,
		}
		if c.amount.IsPositive() {
			e.Status = constants.StatusProcessed
		}
		if f.match(e) {
			out.Merchants = append(out.Merchants, e)
		}
	}

	out.Totals.Reports = len(reports)
	out.Totals.TotalDeposits = deposits.InexactFloat64()
	out.Totals.TotalWithdrawals = withdrawals.InexactFloat64()
	out.Totals.TotalCalculated = calcd.InexactFloat64()
	return out
}

var combinedColumns = []string{
	"Merchant Name",
	"Type",
	"Transaction Count",
	"Total Amount (₹)",
	"Total Fees (₹)",
	"Percentage (%)",
	"Calculated Amount (₹)",
	"Status",
	"Last Updated",
}

var combinedWidths = map[string]float64{
	"Merchant Name":         20,
	"Type":                  12,
	"Transaction Count":     15,
	"Total Amount (₹)":      18,
	"Total Fees (₹)":        15,
	"Percentage (%)":        12,
	"Calculated Amount (₹)": 20,
	"Status":                12,
	"Last Updated":          15,
}

// CombinedExport renders entries as the "Recent Summary Results" workbook and
// returns it with its file name for day.
func CombinedExport(entries []CombinedEntry, day time.Time) (string, []byte, error) {
	rows := make([][]interface{}, len(entries))
	for i, e := range entries {
		rows[i] = []interface{}{
			e.Merchant,
			string(e.Type),
			e.TransactionCount,
			e.TotalAmount,
			e.TotalFees,
			e.Percentage,
			e.CalculatedAmount,
			e.Status,
			e.LastUpdated.Format(constants.DateFormat),
		}
	}
	data, err := sheet.Bytes(sheet.Sheet{
		Name:    constants.SheetRecentSummary,
		Columns: combinedColumns,
		Rows:    rows,
		Widths:  combinedWidths,
	})
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf(constants.CombinedExportFormat, day.UTC().Format(constants.DateFormat)), data, nil
}
