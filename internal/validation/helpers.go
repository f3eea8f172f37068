package validation

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"MerchantReports/api/constants"
	"MerchantReports/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Request bodies larger than this are rejected before decoding.
const maxBodyBytes = 1 << 20

var requestDateLayouts = []string{
	constants.DateFormat,
	time.RFC3339Nano,
	time.RFC3339,
	constants.DateFormatISO,
	constants.DateTimeFormat,
	"2006-01-02T15:04:05.000Z",
}

// NormalizeRequestDate converts a request date to YYYY-MM-DD in UTC.
func NormalizeRequestDate(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", model.NewValidationError(constants.FormatMissingFieldError(field))
	}
	for _, l := range requestDateLayouts {
		if t, err := time.Parse(l, v); err == nil {
			return t.UTC().Format(constants.DateFormat), nil
		}
	}
	return "", model.NewValidationError(constants.FormatDateError(field))
}

// decodeBody reads a single JSON object from r into dst.
func decodeBody(r io.Reader, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return model.NewValidationError(constants.ErrInvalidJSON)
		}
		return model.NewValidationError(constants.ErrInvalidJSON + ": " + err.Error())
	}
	return nil
}

// panelFrom resolves the panel type, preferring the query string over the body.
func panelFrom(query, body string) (model.PanelType, error) {
	if strings.TrimSpace(query) != "" {
		return model.ParsePanelType(query)
	}
	if strings.TrimSpace(body) == "" {
		return "", model.NewValidationError(constants.FormatMissingFieldError("type"))
	}
	return model.ParsePanelType(body)
}
