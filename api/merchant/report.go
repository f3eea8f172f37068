package merchant

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"MerchantReports/api/constants"
	"MerchantReports/internal/model"
	"MerchantReports/internal/notification"
	"MerchantReports/internal/sheet"
	"MerchantReports/internal/store"
	"MerchantReports/internal/validation"
)

// Env carries the collaborators shared by the merchant handlers.
type Env struct {
	Store          *store.Store
	Activity       *notification.NotificationService
	UploadDir      string
	OutputDir      string
	MaxUploadBytes int64
	Now            func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) publish(ev notification.Event) {
	if e.Activity != nil {
		e.Activity.Publish(ev)
	}
}

// Generate aggregates the live dataset for in.Panel, writes the report
// workbook and records the report. Nothing is recorded if any step fails.
func Generate(env *Env, in validation.GenerateInput) (model.Report, error) {
	ds, err := env.Store.Dataset(in.Panel)
	if err != nil {
		return model.Report{}, err
	}

	agg := Aggregate(ds, in.Percents, in.Start, in.End)
	now := env.now()
	fileName, err := reserveReportName(env.OutputDir, in.Panel, now)
	if err != nil {
		return model.Report{}, fmt.Errorf("reserve report file: %w", err)
	}
	path := filepath.Join(env.OutputDir, fileName)
	if err := WriteReport(path, agg); err != nil {
		os.Remove(path)
		return model.Report{}, fmt.Errorf("write report %s: %w", fileName, err)
	}

	report := env.Store.AddReport(model.Report{
		PanelType:        in.Panel,
		StartDate:        in.Start,
		EndDate:          in.End,
		MerchantPercents: in.Percents,
		Summary:          agg.Summary,
		FileName:         fileName,
		DownloadURL:      constants.OutputURLPrefix + fileName,
		CreatedAt:        now,
	})

	slog.Info("report generated",
		"component", "merchant",
		"operation", "generate",
		"panel_type", in.Panel,
		"report_id", report.ID,
		"merchants", len(agg.Summary)-1,
		"file", fileName,
	)
	env.publish(notification.Event{
		Kind:      notification.KindGenerate,
		PanelType: in.Panel,
		Message:   fmt.Sprintf("%s report generated for %s to %s", in.Panel, in.Start, in.End),
		Data:      map[string]interface{}{"reportId": report.ID, "downloadUrl": report.DownloadURL},
	})
	return report, nil
}

// Reports generated within the same millisecond take the following free
// millisecond, so an earlier download URL never serves a later workbook.
const maxNameAttempts = 1000

// reserveReportName creates an empty placeholder for the first free
// report-<type>-<millis>.xlsx name at or after at.
func reserveReportName(dir string, panel model.PanelType, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	ms := at.UnixMilli()
	for i := int64(0); i < maxNameAttempts; i++ {
		name := fmt.Sprintf(constants.ReportFileFormat, panel.Slug(), ms+i)
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			f.Close()
			if i > 0 {
				slog.Warn("report name taken, using next millisecond",
					"component", "merchant", "panel_type", panel, "file", name)
			}
			return name, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("no free report name after %d attempts", maxNameAttempts)
}

// WriteReport writes the "Detailed Data" and "Summary" sheets of agg to path.
func WriteReport(path string, agg model.Aggregation) error {
	return sheet.WriteFile(path, DetailSheet(agg.Details), SummarySheet(agg.Summary))
}

// DetailSheet lays out detail rows. Each distinct percent label becomes a
// column, in first-seen order.
func DetailSheet(rows []model.DetailRow) sheet.Sheet {
	base := []string{"Merchant", "Amount", "Fees"}
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.PercentLabel
	}
	cols, index := labelColumns(base, labels)

	out := make([][]interface{}, len(rows))
	for i, r := range rows {
		line := make([]interface{}, len(cols))
		line[0] = r.Merchant
		line[1] = r.Amount.InexactFloat64()
		line[2] = r.Fees.InexactFloat64()
		line[index[r.PercentLabel]] = r.PercentAmount.InexactFloat64()
		out[i] = line
	}
	return sheet.Sheet{Name: constants.SheetDetailedData, Columns: cols, Rows: out}
}

// SummarySheet lays out summary rows the same way as DetailSheet.
func SummarySheet(rows []model.SummaryRow) sheet.Sheet {
	base := []string{"Merchant", "Total Amount", "Total Fees"}
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.PercentLabel
	}
	cols, index := labelColumns(base, labels)

	out := make([][]interface{}, len(rows))
	for i, r := range rows {
		line := make([]interface{}, len(cols))
		line[0] = r.Merchant
		line[1] = r.TotalAmount.InexactFloat64()
		line[2] = r.TotalFees.InexactFloat64()
		line[index[r.PercentLabel]] = r.PercentAmount.InexactFloat64()
		out[i] = line
	}
	return sheet.Sheet{Name: constants.SheetSummary, Columns: cols, Rows: out}
}

func labelColumns(base, labels []string) ([]string, map[string]int) {
	cols := append([]string(nil), base...)
	index := make(map[string]int)
	for _, l := range labels {
		if _, ok := index[l]; ok {
			continue
		}
		index[l] = len(cols)
		cols = append(cols, l)
	}
	return cols, index
}
