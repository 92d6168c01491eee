package log

// Field names shared by every log record.
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldQuery         = "query"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldDurationHuman = "duration_human"
	FieldUserAgent     = "user_agent"
	FieldSuccess       = "success"
	FieldError         = "error"
	FieldErrorType     = "error_type"
	FieldOperation     = "operation"
)

// Life event fields. Notes are never logged: they are free text.
const (
	FieldEmployer      = "employer_name"
	FieldIncome        = "annual_gross_income"
	FieldStartDate     = "start_date"
	FieldEndDate       = "end_date"
	FieldProjection    = "total_income"
	FieldInvalidFields = "invalid_fields"
	FieldFilename      = "filename"
	FieldBytes         = "bytes"
)

// Component names.
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentForm     = "form"
	ComponentExport   = "export"
	ComponentAMQP     = "amqp"
	ComponentDrive    = "drive"
	ComponentCLI      = "cli"
	ComponentSecurity = "security"
	ComponentTrace    = "trace"
)

// Operation names.
const (
	OpValidate = "validate"
	OpProject  = "project"
	OpExport   = "export"
	OpCancel   = "cancel"
	OpPublish  = "publish"
	OpUpload   = "upload"
	OpParse    = "parse"
	OpRender   = "render"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

const ErrorTypeValidation = "validation_error"

// LogFields accumulates key/value pairs for one record.
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

// WithClientIP adds client IP field
func (f LogFields) WithClientIP(ip string) LogFields {
	f[FieldClientIP] = ip
	return f
}

// WithError adds the error text, if any.
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithLifeEvent adds the identifying fields of a life event.
func (f LogFields) WithLifeEvent(employer, income, start, end string) LogFields {
	f[FieldEmployer] = employer
	f[FieldIncome] = income
	f[FieldStartDate] = start
	f[FieldEndDate] = end
	return f
}

// WithHTTPRequest adds HTTP request fields
func (f LogFields) WithHTTPRequest(method, path, query, userAgent string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	f[FieldQuery] = query
	f[FieldUserAgent] = userAgent
	return f
}

// WithHTTPResponse adds HTTP response fields
func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64, success bool) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	f[FieldSuccess] = success
	return f
}

// ToSlice flattens f into slog key/value arguments.
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
