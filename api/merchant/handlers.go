package merchant

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"MerchantReports/api/constants"
	"MerchantReports/api/utils"
	"MerchantReports/internal/checksum"
	"MerchantReports/internal/model"
	"MerchantReports/internal/notification"
	"MerchantReports/internal/validation"
)

// Multipart parts beyond this are spilled to temporary files.
const multipartMemory = 32 << 20

var allowedMIME = map[string]bool{
	constants.ContentTypeXLSX: true,
	constants.ContentTypeXLS:  true,
}

var allowedExt = map[string]bool{
	".xlsx": true,
	".xls":  true,
	".csv":  true,
}

func allowedUpload(name, contentType string) bool {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && allowedMIME[mt] {
		return true
	}
	return allowedExt[strings.ToLower(filepath.Ext(name))]
}

// UploadHandler ingests a spreadsheet for the panel type in ?type= and
// replaces that panel's dataset.
func UploadHandler(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		panel, err := model.ParsePanelType(r.URL.Query().Get("type"))
		if err != nil {
			utils.RespondWithDomainError(w, err, constants.ErrInvalidRequest)
			return
		}

		tooLarge := fmt.Sprintf(constants.ErrFileTooLarge, env.MaxUploadBytes>>20)
		r.Body = http.MaxBytesReader(w, r.Body, env.MaxUploadBytes+multipartMemory)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				utils.RespondWithError(w, http.StatusRequestEntityTooLarge, tooLarge)
				return
			}
			utils.RespondWithError(w, http.StatusBadRequest, constants.ErrNoFileUploaded)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, constants.ErrNoFileUploaded)
			return
		}
		defer file.Close()

		if header.Size > env.MaxUploadBytes {
			utils.RespondWithError(w, http.StatusRequestEntityTooLarge, tooLarge)
			return
		}
		if !allowedUpload(header.Filename, header.Header.Get(constants.ContentTypeText)) {
			utils.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidFileFormat)
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, constants.ErrFileParsingFailed)
			return
		}

		ds, err := Upload(env, panel, header.Filename, data)
		if err != nil {
			utils.RespondWithDomainError(w, err, constants.ErrFileSaveFailed)
			return
		}
		merchants := ds.Merchants
		if merchants == nil {
			merchants = []string{}
		}
		utils.RespondWithPayload(w, map[string]interface{}{"merchants": merchants})
	}
}

// Upload parses data, keeps a copy of the file under the upload directory and
// installs the result as the live dataset for panel.
func Upload(env *Env, panel model.PanelType, name string, data []byte) (*model.Dataset, error) {
	ds, err := Ingest(panel, name, data)
	if err != nil {
		return nil, err
	}
	ds.CreatedAt = env.now()
	ds.Checksum = checksum.Sum(data)

	if prev, err := env.Store.Dataset(panel); err == nil && prev.Checksum != "" {
		if same, _ := checksum.NewChecksumMatcher(prev.Checksum).Match(data); same {
			slog.Info("identical file re-uploaded", "component", "merchant", "panel_type", panel, "file", name)
		}
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".xlsx"
	}
	ds.FilePath = filepath.Join(env.UploadDir, fmt.Sprintf(constants.UploadFileFormat, panel.PanelID(), ext))
	if err := os.MkdirAll(env.UploadDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(ds.FilePath, data, 0o644); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	env.Store.PutDataset(ds)
	slog.Info("dataset uploaded",
		"component", "merchant",
		"operation", "upload",
		"panel_type", panel,
		"file", name,
		"rows", len(ds.Rows),
		"merchants", len(ds.Merchants),
	)
	env.publish(notification.Event{
		Kind:      notification.KindUpload,
		PanelType: panel,
		Message:   fmt.Sprintf("%s file %s uploaded with %d rows", panel, name, len(ds.Rows)),
		Data:      map[string]interface{}{"merchants": len(ds.Merchants), "rows": len(ds.Rows)},
	})
	return ds, nil
}

// GenerateHandler builds a report for the panel type in ?type=.
func GenerateHandler(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := validation.ValidateGenerate(r.Body, r.URL.Query().Get("type"))
		if err != nil {
			utils.RespondWithDomainError(w, err, constants.ErrInvalidRequest)
			return
		}
		report, err := Generate(env, in)
		if err != nil {
			utils.RespondWithDomainError(w, err, constants.ErrReportWriteFailed)
			return
		}
		utils.RespondWithPayload(w, map[string]interface{}{
			"reportId":    report.ID,
			"summary":     report.Summary,
			"downloadUrl": report.DownloadURL,
		})
	}
}

// MerchantTotalsHandler previews per-merchant totals for a date range.
func MerchantTotalsHandler(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, err := validation.ValidatePreview(r.Body)
		if err != nil {
			utils.RespondWithDomainError(w, err, constants.ErrInvalidRequest)
			return
		}
		ds, err := env.Store.Dataset(rng.Panel)
		if err != nil {
			utils.RespondWithDomainError(w, err, constants.ErrInternalServer)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"merchantTotals": MerchantTotals(ds, rng.Start, rng.End),
		})
	}
}

func AllMerchantsHandler(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchants := AllMerchants(env.Store.Datasets())
		if merchants == nil {
			merchants = []model.MerchantActivity{}
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"merchants": merchants})
	}
}

// ReportsHandler lists reports, optionally filtered by ?type= and paged with ?page=&limit=.
func ReportsHandler(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports := env.Store.Reports()
		if t := r.URL.Query().Get("type"); t != "" {
			panel, err := model.ParsePanelType(t)
			if err != nil {
				utils.RespondWithDomainError(w, err, constants.ErrInvalidRequest)
				return
			}
			reports = env.Store.ReportsByPanel(panel)
		}
		if reports == nil {
			reports = []model.Report{}
		}

		params, paged, err := utils.ExtractPagination(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if !paged {
			utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"reports": reports})
			return
		}
		params.SetPaginationStats(len(reports))
		start, end := params.Bounds(len(reports))
		utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"reports":    reports[start:end],
			"pagination": params,
		})
	}
}

func ReportHandler(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidReportID)
			return
		}
		report, ok := env.Store.Report(id)
		if !ok {
			utils.RespondWithError(w, http.StatusNotFound, constants.ErrReportNotFound)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"report": report})
	}
}

func combinedFilter(r *http.Request) (CombinedFilter, error) {
	f := CombinedFilter{Search: strings.TrimSpace(r.URL.Query().Get("search"))}
	if t := r.URL.Query().Get("type"); t != "" && !strings.EqualFold(t, "all") {
		panel, err := model.ParsePanelType(t)
		if err != nil {
			return f, err
		}
		f.Panel = panel
	}
	return f, nil
}

func combined(env *Env, r *http.Request) (CombinedSummary, error) {
	f, err := combinedFilter(r)
	if err != nil {
		return CombinedSummary{}, err
	}
	return Combine(AllMerchants(env.Store.Datasets()), env.Store.Reports(), f), nil
}

// CombinedSummaryHandler merges uploaded merchant totals with report results.
func CombinedSummaryHandler(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := combined(env, r)
		if err != nil {
			utils.RespondWithDomainError(w, err, constants.ErrInvalidRequest)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, summary)
	}
}

// CombinedExportHandler serves the combined summary as an xlsx attachment.
func CombinedExportHandler(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := combined(env, r)
		if err != nil {
			utils.RespondWithDomainError(w, err, constants.ErrInvalidRequest)
			return
		}
		name, data, err := CombinedExport(summary.Merchants, env.now())
		if err != nil {
			utils.RespondWithDomainError(w, err, constants.ErrExportFailed)
			return
		}
		w.Header().Set(constants.ContentTypeText, constants.ContentTypeXLSX)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

// ActivityHandler returns recent upload and generate events, newest first.
func ActivityHandler(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events := []notification.Event{}
		if env.Activity != nil {
			events = env.Activity.GetNotifications()
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"events": events})
	}
}

// OutputFileHandler serves a generated workbook from the output directory.
func OutputFileHandler(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["file"]
		if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
			utils.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidOutputFile)
			return
		}
		path := filepath.Join(env.OutputDir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			utils.RespondWithError(w, http.StatusNotFound, constants.ErrOutputFileNotFound)
			return
		}
		if strings.EqualFold(filepath.Ext(name), ".xlsx") {
			w.Header().Set(constants.ContentTypeText, constants.ContentTypeXLSX)
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		http.ServeFile(w, r, path)
	}
}
