package cli

import (
	"github.com/roach88/atommap/internal/ir"
	"github.com/roach88/atommap/internal/record"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeNotFound      = "E005" // Path, run, or record not found
	ErrCodeWriteFailed   = "E007" // File write error
	ErrCodeConfigInvalid = "E008" // Config file fails the schema

	// Record errors
	ErrCodeMalformedInput  = "E201" // Notation is structurally invalid
	ErrCodeEmptyInput      = "E202" // Notation has no atom map tags
	ErrCodeDuplicateTag    = "E203" // A tag appears more than once
	ErrCodeOutOfRange      = "E204" // An index references a missing tag
	ErrCodeMalformedRecord = "E210" // Line is not "<id> <notation> (<indices>)"
)

// MapOutcomeToErrorCode maps an outcome's error category to a CLI error code.
func MapOutcomeToErrorCode(code string) string {
	switch code {
	case string(ir.ErrCodeMalformedInput):
		return ErrCodeMalformedInput
	case string(ir.ErrCodeEmptyInput):
		return ErrCodeEmptyInput
	case string(ir.ErrCodeDuplicateTag):
		return ErrCodeDuplicateTag
	case string(ir.ErrCodeOutOfRange):
		return ErrCodeOutOfRange
	case record.ErrCodeMalformedRecord:
		return ErrCodeMalformedRecord
	default:
		return ErrCodeGeneric
	}
}
