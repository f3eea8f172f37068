package constants

// Common error messages
const (
	ErrInvalidJSON       = "invalid json or missing fields"
	ErrMethodNotAllowed  = "Method Not Allowed"
	ErrInvalidReportID   = "invalid report id"
	ErrInvalidOutputFile = "invalid file name"
)

// Content Types
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "Content-Type"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeXLS  = "application/vnd.ms-excel"
	ContentTypeSSE  = "text/event-stream"
)

// Date formats
const (
	DateTimeFormat  = "2006-01-02 15:04:05"
	DateFormat      = "2006-01-02"
	DateFormatDash  = "2-Jan-2006"
	DateFormatSlash = "2/Jan/2006"
	DateFormatISO   = "2006-01-02T15:04:05"
)

// Spreadsheet field names in uploaded files.
const (
	FieldMerchantName     = "Merchant Name"
	FieldDate             = "Date"
	FieldTransactionDate  = "Transaction Date"
	FieldCreatedAt        = "Created At"
	FieldDepositAmount    = "Deposit Amount"
	FieldDepositFees      = "Deposit Fees"
	FieldWithdrawalAmount = "Withdrawal Amount"
	FieldWithdrawalFees   = "Withdrawal Fees"
)

// Generated workbook layout
const (
	SheetDetailedData    = "Detailed Data"
	SheetSummary         = "Summary"
	SheetRecentSummary   = "Recent Summary Results"
	ReportFileFormat     = "report-%s-%d.xlsx"
	UploadFileFormat     = "panel-%s-input%s"
	CombinedExportFormat = "Recent_Summary_Results_%s.xlsx"
	OutputURLPrefix      = "/output/"
)

// Combined summary statuses
const (
	StatusProcessed = "Processed"
	StatusAvailable = "Available"
)
