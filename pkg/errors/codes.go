package errors

import "fmt"

// -----------------------------------------------------------------------------
// Configuration Error Codes
// -----------------------------------------------------------------------------

const (
	ErrConfigNotFound      = "CONFIG_NOT_FOUND"
	ErrConfigParseFailed   = "CONFIG_PARSE_FAILED"
	ErrConfigInvalid       = "CONFIG_INVALID"
	ErrConfigWriteFailed   = "CONFIG_WRITE_FAILED"
	ErrConfigAlreadyExists = "CONFIG_ALREADY_EXISTS"
)

// -----------------------------------------------------------------------------
// Validation Error Codes
// -----------------------------------------------------------------------------

const (
	ErrRequestInvalid     = "REQUEST_INVALID"
	ErrFieldRequired      = "FIELD_REQUIRED"
	ErrFileFormatInvalid  = "FILE_FORMAT_INVALID"
	ErrValueOutOfRange    = "VALUE_OUT_OF_RANGE"
	ErrModelUnknown       = "MODEL_UNKNOWN"
	ErrFormatUnsupported  = "FORMAT_UNSUPPORTED"
	ErrDatasetChoiceEmpty = "DATASET_CHOICE_REQUIRED"
)

// -----------------------------------------------------------------------------
// Render Error Codes
// -----------------------------------------------------------------------------

const (
	ErrMatrixMalformed = "MATRIX_MALFORMED"
	ErrRenderFailed    = "RENDER_FAILED"
	ErrPageOutOfRange  = "PREVIEW_PAGE_OUT_OF_RANGE"
	ErrExportFailed    = "EXPORT_FAILED"
	ErrEmptyDocument   = "DOCUMENT_EMPTY"
)

// -----------------------------------------------------------------------------
// Data Error Codes
// -----------------------------------------------------------------------------

const (
	ErrDatasetNotFound = "DATASET_NOT_FOUND"
	ErrDatasetExists   = "DATASET_EXISTS"
	ErrHistoryNotFound = "HISTORY_NOT_FOUND"
	ErrHistoryEmpty    = "HISTORY_EMPTY"
)

// -----------------------------------------------------------------------------
// Command, Network, IO and Internal Error Codes
// -----------------------------------------------------------------------------

const (
	ErrCommandUnknown = "COMMAND_UNKNOWN"
	ErrCommandArgs    = "COMMAND_INVALID_ARGS"

	ErrServerStart    = "SERVER_START_FAILED"
	ErrServerShutdown = "SERVER_SHUTDOWN_FAILED"

	ErrFileRead  = "FILE_READ_FAILED"
	ErrFileWrite = "FILE_WRITE_FAILED"

	ErrInternal  = "INTERNAL_ERROR"
	ErrCancelled = "OPERATION_CANCELLED"
)

// CodeCategory maps every known code to its category.
var CodeCategory = map[string]Category{
	ErrConfigNotFound:      CategoryConfig,
	ErrConfigParseFailed:   CategoryConfig,
	ErrConfigInvalid:       CategoryConfig,
	ErrConfigWriteFailed:   CategoryConfig,
	ErrConfigAlreadyExists: CategoryConfig,

	ErrRequestInvalid:     CategoryValidation,
	ErrFieldRequired:      CategoryValidation,
	ErrFileFormatInvalid:  CategoryValidation,
	ErrValueOutOfRange:    CategoryValidation,
	ErrModelUnknown:       CategoryValidation,
	ErrFormatUnsupported:  CategoryValidation,
	ErrDatasetChoiceEmpty: CategoryValidation,

	ErrMatrixMalformed: CategoryRender,
	ErrRenderFailed:    CategoryRender,
	ErrPageOutOfRange:  CategoryRender,
	ErrExportFailed:    CategoryRender,
	ErrEmptyDocument:   CategoryRender,

	ErrDatasetNotFound: CategoryData,
	ErrDatasetExists:   CategoryData,
	ErrHistoryNotFound: CategoryData,
	ErrHistoryEmpty:    CategoryData,

	ErrCommandUnknown: CategoryCommand,
	ErrCommandArgs:    CategoryCommand,

	ErrServerStart:    CategoryNetwork,
	ErrServerShutdown: CategoryNetwork,

	ErrFileRead:  CategoryIO,
	ErrFileWrite: CategoryIO,

	ErrInternal:  CategoryInternal,
	ErrCancelled: CategoryInternal,
}

// CategoryFor returns the category for code, or CategoryInternal when unknown.
func CategoryFor(code string) Category {
	if c, ok := CodeCategory[code]; ok {
		return c
	}
	return CategoryInternal
}

// E builds an error for a known code, deriving the category and attaching
// registered suggestions.
func E(code, message string) *ReportError {
	return AttachSuggestions(New(code, CategoryFor(code), message))
}

// Ef is E with a formatted message.
func Ef(code, format string, args ...interface{}) *ReportError {
	return E(code, fmt.Sprintf(format, args...))
}

// -----------------------------------------------------------------------------
// Specific constructors
// -----------------------------------------------------------------------------

// ConfigNotFound reports a missing configuration file.
func ConfigNotFound(path string) *ReportError {
	return E(ErrConfigNotFound, "configuration file not found").WithContext("path", path)
}

// FieldRequired reports a missing required input field.
func FieldRequired(field string) *ReportError {
	return Ef(ErrFieldRequired, "%s is required", field).WithContext("field", field)
}

// MatrixMalformed reports a confusion matrix that cannot be drawn.
func MatrixMalformed(reason string) *ReportError {
	return Ef(ErrMatrixMalformed, "malformed matrix: %s", reason)
}

// DatasetNotFound reports an unknown dataset identifier.
func DatasetNotFound(id string) *ReportError {
	return Ef(ErrDatasetNotFound, "dataset %q not found", id).WithContext("dataset", id)
}

// HistoryNotFound reports an unknown history record.
func HistoryNotFound(id string) *ReportError {
	return Ef(ErrHistoryNotFound, "history record %q not found", id).WithContext("id", id)
}

// FormatUnsupported reports an output format the caller cannot use.
func FormatUnsupported(format string, supported ...string) *ReportError {
	err := Ef(ErrFormatUnsupported, "unsupported format %q", format).WithContext("format", format)
	if len(supported) > 0 {
		err.WithContext("supported", fmt.Sprint(supported))
	}
	return err
}
