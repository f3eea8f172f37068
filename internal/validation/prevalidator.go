package validation

import (
	"fmt"
	"io"

	"MerchantReports/api/constants"
	"MerchantReports/internal/model"
)

// GenerateRequest is the body of a report generation request.
type GenerateRequest struct {
	Type             string         `json:"type"`
	MerchantPercents model.Percents `json:"merchantPercents"`
	StartDate        string         `json:"startDate"`
	EndDate          string         `json:"endDate"`
}

// PreviewRequest is the body of a merchant totals preview request.
type PreviewRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Range is a validated inclusive date range for one panel type.
type Range struct {
	Panel model.PanelType
	Start string
	End   string
}

// GenerateInput is a validated generate request.
type GenerateInput struct {
	Range
	Percents model.Percents
}

// ValidateGenerate decodes and validates a generate request. queryType, when
// set, overrides the type in the body.
func ValidateGenerate(body io.Reader, queryType string) (GenerateInput, error) {
	var req GenerateRequest
	if err := decodeBody(body, &req); err != nil {
		return GenerateInput{}, err
	}
	return req.Validate(queryType)
}

// Validate checks the request fields and normalizes the date range.
func (req GenerateRequest) Validate(queryType string) (GenerateInput, error) {
	rng, err := validateRange(queryType, req.Type, req.StartDate, req.EndDate)
	if err != nil {
		return GenerateInput{}, err
	}
	if req.MerchantPercents == nil {
		return GenerateInput{}, model.NewValidationError(constants.FormatMissingFieldError("merchantPercents"))
	}
	for _, mp := range req.MerchantPercents {
		if mp.Percent.IsNegative() || mp.Percent.GreaterThan(hundred) {
			return GenerateInput{}, model.NewValidationError(fmt.Sprintf(constants.ErrInvalidPercent, mp.Merchant))
		}
	}
	return GenerateInput{Range: rng, Percents: req.MerchantPercents}, nil
}

// ValidatePreview decodes and validates a merchant totals request.
func ValidatePreview(body io.Reader) (Range, error) {
	var req PreviewRequest
	if err := decodeBody(body, &req); err != nil {
		return Range{}, err
	}
	return validateRange("", req.Type, req.StartDate, req.EndDate)
}

func validateRange(queryType, bodyType, start, end string) (Range, error) {
	panel, err := panelFrom(queryType, bodyType)
	if err != nil {
		return Range{}, err
	}
	s, err := NormalizeRequestDate("startDate", start)
	if err != nil {
		return Range{}, err
	}
	e, err := NormalizeRequestDate("endDate", end)
	if err != nil {
		return Range{}, err
	}
	return Range{Panel: panel, Start: s, End: e}, nil
}
