package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MerchantReports/internal/model"
)

func TestNormalizeRequestDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2024-01-05", "2024-01-05", false},
		{" 2024-01-05 ", "2024-01-05", false},
		{"2024-01-05T23:30:00+05:30", "2024-01-05", false},
		{"2024-01-05T20:00:00-05:00", "2024-01-06", false},
		{"2024-01-05T10:00:00.000Z", "2024-01-05", false},
		{"2024-01-05 10:00:00", "2024-01-05", false},
		{"", "", true},
		{"yesterday", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeRequestDate("startDate", tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateGenerate(t *testing.T) {
	body := `{"merchantPercents":{"Acme":10,"Globex":"2.5","Bad":"n/a"},"startDate":"2024-01-01","endDate":"2024-01-31T00:00:00Z"}`
	in, err := ValidateGenerate(strings.NewReader(body), "Withdrawal")
	require.NoError(t, err)

	assert.Equal(t, model.Withdrawal, in.Panel)
	assert.Equal(t, "2024-01-01", in.Start)
	assert.Equal(t, "2024-01-31", in.End)
	require.Len(t, in.Percents, 2)
	assert.Equal(t, "Acme", in.Percents[0].Merchant)
	assert.Equal(t, "Globex", in.Percents[1].Merchant)
}

func TestValidateGenerateTypeFromBody(t *testing.T) {
	body := `{"type":"Deposit","merchantPercents":{},"startDate":"2024-01-01","endDate":"2024-01-31"}`
	in, err := ValidateGenerate(strings.NewReader(body), "")
	require.NoError(t, err)
	assert.Equal(t, model.Deposit, in.Panel)
	assert.Empty(t, in.Percents)
}

func TestValidateGenerateRejects(t *testing.T) {
	tests := []struct {
		name  string
		query string
		body  string
		msg   string
	}{
		{"empty body", "Deposit", ``, "invalid json or missing fields"},
		{"bad json", "Deposit", `{`, "invalid json"},
		{"missing type", "", `{"merchantPercents":{},"startDate":"2024-01-01","endDate":"2024-01-02"}`, "Required field 'type' is missing"},
		{"bad type", "Refund", `{"merchantPercents":{},"startDate":"2024-01-01","endDate":"2024-01-02"}`, "invalid panel type"},
		{"missing percents", "Deposit", `{"startDate":"2024-01-01","endDate":"2024-01-02"}`, "Required field 'merchantPercents' is missing"},
		{"percents not object", "Deposit", `{"merchantPercents":[1],"startDate":"2024-01-01","endDate":"2024-01-02"}`, "invalid json"},
		{"percent out of range", "Deposit", `{"merchantPercents":{"Acme":101},"startDate":"2024-01-01","endDate":"2024-01-02"}`, "between 0 and 100"},
		{"missing start", "Deposit", `{"merchantPercents":{},"endDate":"2024-01-02"}`, "Required field 'startDate' is missing"},
		{"bad end", "Deposit", `{"merchantPercents":{},"startDate":"2024-01-01","endDate":"soon"}`, "Invalid date format for 'endDate'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateGenerate(strings.NewReader(tt.body), tt.query)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrValidation)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestValidatePreview(t *testing.T) {
	rng, err := ValidatePreview(strings.NewReader(`{"type":"Deposit","startDate":"2024-02-01","endDate":"2024-02-29"}`))
	require.NoError(t, err)
	assert.Equal(t, Range{Panel: model.Deposit, Start: "2024-02-01", End: "2024-02-29"}, rng)

	_, err = ValidatePreview(strings.NewReader(`{"startDate":"2024-02-01","endDate":"2024-02-29"}`))
	assert.ErrorIs(t, err, model.ErrValidation)
}
