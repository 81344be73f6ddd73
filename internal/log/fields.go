package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldCompanyID  = "company_id"
	FieldAccountID  = "account_id"
	FieldEntryID    = "entry_id"
	FieldEntryDate  = "entry_date"
	FieldAmount     = "amount"
	FieldEntryType  = "entry_type"
	FieldCategory   = "category"
	FieldStart      = "start"
	FieldEnd        = "end"
	FieldSheetsRef  = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentDRE     = "dre"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentCache   = "cache"
	ComponentReport  = "report"
)
