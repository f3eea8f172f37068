package merchant

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"MerchantReports/api/constants"
	"MerchantReports/internal/model"
	"MerchantReports/internal/sheet"
)

// Spreadsheet serial day zero.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Largest serial Excel accepts (9999-12-31).
const maxSerial = 2958465

var (
	dayFirstPattern = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})(?:[ T].*)?$`)
	spacePattern    = regexp.MustCompile(`\s+`)
	numberStrip     = strings.NewReplacer(",", "", "₹", "", "$", "", " ", "", "\u00a0", "")
)

// Day-first layouts come before month-first ones, so 03/04/2024 is 3 April.
var dateLayouts = []string{
	// ISO and machine formats
	constants.DateFormat,
	constants.DateTimeFormat,
	constants.DateFormatISO,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-1-2",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006/1/2",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006.01.02",
	"20060102",
	// dd/mm/yyyy variants
	"2/1/2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006 3:04:05 PM",
	"2/1/2006 3:04 PM",
	"02.01.2006",
	// mm/dd/yyyy variants
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	// Named month formats
	constants.DateFormatDash,
	constants.DateFormatSlash,
	"2-Jan-2006 15:04:05",
	"2-Jan-2006 15:04",
	"2-Jan-2006 3:04:05 PM",
	"2 Jan 2006",
	"2 Jan 2006 15:04:05",
	"2 January 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006 3:04:05 PM",
	"Jan 2 2006 15:04:05",
	"January 2, 2006",
	"January 2 2006",
	"Mon Jan 2 2006",
	"Mon Jan 2 2006 15:04:05",
	"Mon, 02 Jan 2006 15:04:05 MST",
}

// NormalizeDate converts a raw spreadsheet date to YYYY-MM-DD. It returns ""
// when the value cannot be interpreted as a calendar date.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, "-/") {
		if d := serialDate(v); d != "" {
			return d
		}
	}
	if m := dayFirstPattern.FindStringSubmatch(s); m != nil {
		return validDate(m[3] + "-" + m[2] + "-" + m[1])
	}

	s = spacePattern.ReplaceAllString(s, " ")
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			if t.Year() < 1900 || t.Year() > 9999 {
				continue
			}
			return t.Format(constants.DateFormat)
		}
	}
	return ""
}

func serialDate(v float64) string {
	if !(v >= 1 && v <= maxSerial) {
		return ""
	}
	return serialEpoch.AddDate(0, 0, int(v)).Format(constants.DateFormat)
}

func validDate(s string) string {
	if _, err := time.Parse(constants.DateFormat, s); err != nil {
		return ""
	}
	return s
}

// ParseAmount reads a spreadsheet number. Thousands separators and currency
// symbols are ignored; anything else that does not parse is zero.
func ParseAmount(raw string) decimal.Decimal {
	s := numberStrip.Replace(strings.TrimSpace(raw))
	if s == "" {
		return decimal.Zero
	}
	neg := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if neg {
		s = s[1 : len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if neg {
		return d.Neg()
	}
	return d
}

func firstNonZero(a, b decimal.Decimal) decimal.Decimal {
	if !a.IsZero() {
		return a
	}
	return b
}

// NormalizeRecord turns one header-keyed record into a fixed-shape Row.
func NormalizeRecord(rec sheet.Record) model.Row {
	raw := rec.Get(constants.FieldDate, constants.FieldTransactionDate, constants.FieldCreatedAt)
	r := model.Row{
		Merchant:         rec.Get(constants.FieldMerchantName),
		DepositAmount:    ParseAmount(rec[constants.FieldDepositAmount]),
		DepositFee:       ParseAmount(rec[constants.FieldDepositFees]),
		WithdrawalAmount: ParseAmount(rec[constants.FieldWithdrawalAmount]),
		WithdrawalFee:    ParseAmount(rec[constants.FieldWithdrawalFees]),
		RawDate:          raw,
		DateOnly:         NormalizeDate(raw),
	}
	r.Amount = firstNonZero(r.WithdrawalAmount, r.DepositAmount)
	r.Fee = firstNonZero(r.WithdrawalFee, r.DepositFee)
	return r
}

// NormalizeTable normalizes every record and collects distinct non-empty
// merchant names in first-seen order.
func NormalizeTable(t *sheet.Table) ([]model.Row, []string) {
	rows := make([]model.Row, 0, len(t.Records))
	seen := make(map[string]struct{})
	var merchants []string
	for _, rec := range t.Records {
		r := NormalizeRecord(rec)
		rows = append(rows, r)
		if r.Merchant == "" {
			continue
		}
		if _, ok := seen[r.Merchant]; !ok {
			seen[r.Merchant] = struct{}{}
			merchants = append(merchants, r.Merchant)
		}
	}
	return rows, merchants
}

// Ingest reads the first sheet of an uploaded file into a Dataset.
func Ingest(panel model.PanelType, name string, data []byte) (*model.Dataset, error) {
	t, err := sheet.ReadFirstSheet(name, data)
	if err != nil {
		return nil, err
	}
	rows, merchants := NormalizeTable(t)
	return &model.Dataset{
		ID:           uuid.NewString(),
		PanelType:    panel,
		OriginalName: name,
		Merchants:    merchants,
		Rows:         rows,
		CreatedAt:    time.Now(),
	}, nil
}
