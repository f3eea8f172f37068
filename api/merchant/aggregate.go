package merchant

import (
	"github.com/shopspring/decimal"

	"MerchantReports/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Aggregate filters ds to [start, end] for every merchant in percents and
// computes detail, per-merchant and grand totals. Merchants without rows in the
// range produce nothing. Totals accumulate unrounded values and round once.
func Aggregate(ds *model.Dataset, percents model.Percents, start, end string) model.Aggregation {
	var (
		out                        model.Aggregation
		grandAmt, grandFee, grandP decimal.Decimal
	)

	for _, mp := range percents {
		label := model.PercentLabel(mp.Percent)
		var totalAmt, totalFee, totalP decimal.Decimal
		matched := 0

		for _, row := range ds.Rows {
			if row.Merchant != mp.Merchant || !row.InRange(start, end) {
				continue
			}
			matched++
			pAmt := row.Amount.Mul(mp.Percent).Div(hundred)
			totalAmt = totalAmt.Add(row.Amount)
			totalFee = totalFee.Add(row.Fee)
			totalP = totalP.Add(pAmt)

			out.Details = append(out.Details, model.DetailRow{
				Merchant:      mp.Merchant,
				Amount:        row.Amount,
				Fees:          row.Fee,
				PercentAmount: pAmt.Round(2),
				PercentLabel:  label,
			})
		}
		if matched == 0 {
			continue
		}

		out.Details = append(out.Details, model.DetailRow{
			Merchant:      model.MerchantTotalLabel(mp.Merchant),
			Amount:        totalAmt.Round(2),
			Fees:          totalFee.Round(2),
			PercentAmount: totalP.Round(2),
			PercentLabel:  label,
		})
		out.Summary = append(out.Summary, model.SummaryRow{
			Merchant:      mp.Merchant,
			TotalAmount:   totalAmt.Round(2),
			TotalFees:     totalFee.Round(2),
			PercentAmount: totalP.Round(2),
			PercentLabel:  label,
		})

		grandAmt = grandAmt.Add(totalAmt)
		grandFee = grandFee.Add(totalFee)
		grandP = grandP.Add(totalP)
	}

	out.Details = append(out.Details, model.DetailRow{
		Merchant:      model.GrandDetailLabel,
		Amount:        grandAmt.Round(2),
		Fees:          grandFee.Round(2),
		PercentAmount: grandP.Round(2),
		PercentLabel:  model.GrandPercentLabel,
	})
	out.Summary = append(out.Summary, model.SummaryRow{
		Merchant:      model.GrandSummaryLabel,
		TotalAmount:   grandAmt.Round(2),
		TotalFees:     grandFee.Round(2),
		PercentAmount: grandP.Round(2),
		PercentLabel:  model.GrandPercentLabel,
	})
	return out
}

// MerchantTotals sums amount and fee per merchant over rows dated in
// [start, end]. No rounding is applied.
func MerchantTotals(ds *model.Dataset, start, end string) map[string]model.MerchantTotal {
	totals := make(map[string]model.MerchantTotal)
	for _, row := range ds.Rows {
		if row.Merchant == "" || !row.InRange(start, end) {
			continue
		}
		t := totals[row.Merchant]
		t.Amount = t.Amount.Add(row.Amount)
		t.Fees = t.Fees.Add(row.Fee)
		totals[row.Merchant] = t
	}
	return totals
}

// AllMerchants summarizes every row of each dataset per merchant using the
// panel-specific amount and fee columns. A merchant present in both datasets
// yields one entry per panel.
func AllMerchants(datasets []*model.Dataset) []model.MerchantActivity {
	var out []model.MerchantActivity
	for _, ds := range datasets {
		index := make(map[string]int)
		for _, row := range ds.Rows {
			if row.Merchant == "" {
				continue
			}
			i, ok := index[row.Merchant]
			if !ok {
				i = len(out)
				index[row.Merchant] = i
				out = append(out, model.MerchantActivity{
					Merchant:    row.Merchant,
					Type:        ds.PanelType,
					LastUpdated: ds.CreatedAt,
				})
			}
			amt, fee := row.PanelAmount(ds.PanelType)
			out[i].TotalAmount = out[i].TotalAmount.Add(amt)
			out[i].TotalFees = out[i].TotalFees.Add(fee)
			out[i].TransactionCount++
		}
	}
	return out
}
