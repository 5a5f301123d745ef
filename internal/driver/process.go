package driver

import (
	"errors"

	"github.com/roach88/atommap/internal/ir"
	"github.com/roach88/atommap/internal/record"
	"github.com/roach88/atommap/internal/renumber"
)

// Process parses one line and renumbers the record it holds.
// It never panics and never returns partial output: a failed outcome has
// a zero Output.
func Process(seq int64, line string) ir.Outcome {
	out := ir.Outcome{Seq: seq, Line: line}

	rec, err := record.Parse(line)
	if err != nil {
		return fail(out, err)
	}
	out.Input = rec
	out.RecordID = ir.MustRecordID(rec)

	renumbered, err := renumber.Renumber(rec)
	if err != nil {
		return fail(out, err)
	}
	out.Output = renumbered
	return out
}

func fail(out ir.Outcome, err error) ir.Outcome {
	out.Err = err
	out.ErrorCode = ErrorCode(err)
	out.ErrorMessage = err.Error()
	return out
}

// ErrorCode returns the category name of err: an ir.ErrorCode for engine
// errors, record.ErrCodeMalformedRecord for framing errors, "ERROR" for
// anything else.
func ErrorCode(err error) string {
	if code := ir.CodeOf(err); code != "" {
		return string(code)
	}
	var pe *record.ParseError
	if errors.As(err, &pe) {
		return record.ErrCodeMalformedRecord
	}
	return "ERROR"
}
