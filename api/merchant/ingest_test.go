package merchant

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MerchantReports/internal/model"
	"MerchantReports/internal/sheet"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"45292", "2024-01-01"},
		{"45292.75", "2024-01-01"},
		{"1", "1899-12-31"},
		{"15-01-2024", "2024-01-15"},
		{"15-01-2024 10:30:00", "2024-01-15"},
		{"31-02-2024", ""},
		{"2024-01-15", "2024-01-15"},
		{"2024-01-15 08:00:00", "2024-01-15"},
		{"2024-01-15T10:00:00Z", "2024-01-15"},
		{"2024/01/15", "2024-01-15"},
		{"01/15/2024", "2024-01-15"},
		{"Jan 15, 2024", "2024-01-15"},
		{"15  Jan 2024", "2024-01-15"},
		{"20240115", "2024-01-15"},
		{"2024-01-15 10:30", "2024-01-15"},
		{"2024-01-15T10:30", "2024-01-15"},
		{"2024-1-5", "2024-01-05"},
		{"2024/1/5", "2024-01-05"},
		{"15/01/2024", "2024-01-15"},
		{"15/01/2024 10:30", "2024-01-15"},
		{"03/04/2024", "2024-04-03"},
		{"1/15/2024 10:30:00 AM", "2024-01-15"},
		{"1/15/2024 3:45 PM", "2024-01-15"},
		{"Jan 15 2024", "2024-01-15"},
		{"January 15 2024", "2024-01-15"},
		{"15-Jan-2024 14:05", "2024-01-15"},
		{"15/Jan/2024", "2024-01-15"},
		{"Mon Jan 15 2024 10:30:00", "2024-01-15"},
		{"13/13/2024", ""},
		{"0", ""},
		{"-3", ""},
		{"NaN", ""},
		{"not a date", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.in))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100", "100"},
		{" 1,200.50 ", "1200.5"},
		{"₹ 300", "300"},
		{"$12.75", "12.75"},
		{"(50)", "-50"},
		{"-7.5", "-7.5"},
		{"abc", "0"},
		{"", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assertDec(t, tt.want, ParseAmount(tt.in))
		})
	}
}

func TestNormalizeRecordFallbacks(t *testing.T) {
	tests := []struct {
		name           string
		rec            sheet.Record
		amount, fee    string
		rawDate, dateO string
	}{
		{
			name:   "withdrawal fields win",
			rec:    sheet.Record{"Merchant Name": "Acme", "Withdrawal Amount": "200", "Deposit Amount": "100", "Withdrawal Fees": "3", "Deposit Fees": "1", "Date": "45292"},
			amount: "200", fee: "3", rawDate: "45292", dateO: "2024-01-01",
		},
		{
			name:   "deposit fallback",
			rec:    sheet.Record{"Merchant Name": "Acme", "Deposit Amount": "100", "Deposit Fees": "1", "Transaction Date": "02-03-2024"},
			amount: "100", fee: "1", rawDate: "02-03-2024", dateO: "2024-03-02",
		},
		{
			name:   "zero withdrawal falls back",
			rec:    sheet.Record{"Merchant Name": "Acme", "Withdrawal Amount": "0", "Deposit Amount": "40", "Created At": "2024-05-06"},
			amount: "40", fee: "0", rawDate: "2024-05-06", dateO: "2024-05-06",
		},
		{
			name:   "absent and garbage are zero",
			rec:    sheet.Record{"Merchant Name": "Acme", "Withdrawal Amount": "n/a", "Date": ""},
			amount: "0", fee: "0", rawDate: "", dateO: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NormalizeRecord(tt.rec)
			assert.Equal(t, "Acme", r.Merchant)
			assertDec(t, tt.amount, r.Amount)
			assertDec(t, tt.fee, r.Fee)
			assert.Equal(t, tt.rawDate, r.RawDate)
			assert.Equal(t, tt.dateO, r.DateOnly)
		})
	}
}

func TestNormalizeTableMerchants(t *testing.T) {
	tbl := &sheet.Table{Records: []sheet.Record{
		{"Merchant Name": "Globex"},
		{"Merchant Name": "Acme"},
		{"Merchant Name": ""},
		{"Merchant Name": "Globex"},
	}}
	rows, merchants := NormalizeTable(tbl)
	assert.Len(t, rows, 4)
	assert.Equal(t, []string{"Globex", "Acme"}, merchants)
}

func TestIngest(t *testing.T) {
	data := workbook(t, [][]interface{}{
		{"Merchant Name", "Date", "Deposit Amount", "Deposit Fees"},
		{"Acme", 45292, 100, 5},
		{"Globex", "02-01-2024", 50, 1},
	})
	ds, err := Ingest(model.Deposit, "deposits.xlsx", data)
	require.NoError(t, err)

	assert.NotEmpty(t, ds.ID)
	assert.Equal(t, model.Deposit, ds.PanelType)
	assert.Equal(t, "deposits.xlsx", ds.OriginalName)
	assert.Equal(t, []string{"Acme", "Globex"}, ds.Merchants)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "2024-01-01", ds.Rows[0].DateOnly)
	assert.Equal(t, "2024-01-02", ds.Rows[1].DateOnly)
	assertDec(t, "100", ds.Rows[0].Amount)
}

func TestIngestEmpty(t *testing.T) {
	_, err := Ingest(model.Deposit, "empty.xlsx", workbook(t, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrParse)
}
