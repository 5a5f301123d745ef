// Package record converts between text lines and ir.Record.
//
// A line has three fields:
//
//	<identifier> <notation> (<i0>, <i1>, ..., <iN>)
//
// The identifier is the first whitespace-delimited token and is never
// inspected. The index tuple is the final parenthesised group. The notation
// is everything between them.
package record

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/roach88/atommap/internal/ir"
)

// ErrCodeMalformedRecord identifies line framing failures. These are
// distinct from engine errors: the line never reached the engine.
const ErrCodeMalformedRecord = "MALFORMED_RECORD"

// ParseError reports a line that cannot be split into a record.
type ParseError struct {
	Line    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCodeMalformedRecord, e.Message)
}

func parseErrorf(line, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// Parse splits a line into a record.
// Leading and trailing whitespace is ignored.
func Parse(line string) (ir.Record, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ir.Record{}, parseErrorf(line, "empty line")
	}

	idEnd := strings.IndexFunc(trimmed, unicode.IsSpace)
	if idEnd < 0 {
		return ir.Record{}, parseErrorf(line, "expected notation and index tuple after identifier")
	}
	identifier := trimmed[:idEnd]
	rest := trimmed[idEnd:]

	if !strings.HasSuffix(rest, ")") {
		return ir.Record{}, parseErrorf(line, "line must end with an index tuple")
	}
	// Tuples never nest, so the last '(' opens the tuple.
	open := strings.LastIndexByte(rest, '(')
	if open < 0 {
		return ir.Record{}, parseErrorf(line, "missing '(' for index tuple")
	}
	if open == 0 || !unicode.IsSpace(rune(rest[open-1])) {
		return ir.Record{}, parseErrorf(line, "index tuple must be separated from the notation by whitespace")
	}

	notation := strings.TrimSpace(rest[:open])
	if notation == "" {
		return ir.Record{}, parseErrorf(line, "missing notation")
	}
	if strings.IndexFunc(notation, unicode.IsSpace) >= 0 {
		return ir.Record{}, parseErrorf(line, "notation must not contain whitespace")
	}

	indices, err := parseIndices(rest[open+1 : len(rest)-1])
	if err != nil {
		return ir.Record{}, parseErrorf(line, "%v", err)
	}

	return ir.Record{Identifier: identifier, Notation: notation, Indices: indices}, nil
}

// parseIndices parses a comma-separated list of non-negative decimals.
// Each entry must be digits only; signs, blanks and other text are rejected.
func parseIndices(body string) ([]int, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("index tuple is empty")
	}

	fields := strings.Split(body, ",")
	indices := make([]int, 0, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, fmt.Errorf("index %d is empty", i)
		}
		for j := 0; j < len(f); j++ {
			if f[j] < '0' || f[j] > '9' {
				return nil, fmt.Errorf("index %d: %q is not a non-negative integer", i, f)
			}
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		indices = append(indices, v)
	}
	return indices, nil
}

// Format renders a record as a line, without a trailing newline.
func Format(rec ir.Record) string {
	var sb strings.Builder
	sb.WriteString(rec.Identifier)
	sb.WriteByte(' ')
	sb.WriteString(rec.Notation)
	sb.WriteString(" (")
	for i, v := range rec.Indices {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte(')')
	return sb.String()
}
