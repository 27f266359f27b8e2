// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrDecode matches every *DecodeError through errors.Is.
var ErrDecode = errors.New("record decode failed")

// Reason classifies a decode failure.
type Reason string

const (
	ReasonColumnCount    Reason = "column-count"
	ReasonNotNumeric     Reason = "not-numeric"
	ReasonHeaderMismatch Reason = "header-mismatch"
	ReasonMissingRow     Reason = "missing-row"
	ReasonOutOfRange     Reason = "out-of-range"
)

// DecodeError describes why a persisted row could not be turned into a record.
type DecodeError struct {
	Kind   string // pet, parental, time-window, play-stats, quiz
	Row    int
	Column int // -1 when the whole row is at fault
	Reason Reason
	Value  string
}

func (e *DecodeError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("decode %s row %d: %s", e.Kind, e.Row, e.Reason)
	}
	return fmt.Sprintf("decode %s row %d column %d: %s (%q)", e.Kind, e.Row, e.Column, e.Reason, e.Value)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// SplitRow splits one comma-separated line. Quoted fields may contain commas
// and doubled quotes. Space outside the quotes is trimmed; space inside them
// is kept.
func SplitRow(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil
	}

	var (
		fields   []string
		cur      strings.Builder
		inQuotes bool
		// quoted content spans cur[qStart:qEnd]; qStart < 0 means none yet.
		qStart, qEnd = -1, -1
	)
	flush := func() {
		v := cur.String()
		if qStart < 0 {
			fields = append(fields, strings.TrimSpace(v))
		} else {
			fields = append(fields, strings.TrimLeftFunc(v[:qStart], unicode.IsSpace)+
				v[qStart:qEnd]+strings.TrimRightFunc(v[qEnd:], unicode.IsSpace))
		}
		cur.Reset()
		qStart, qEnd = -1, -1
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && inQuotes && i+1 < len(line) && line[i+1] == '"':
			cur.WriteByte('"')
			i++
		case c == '"' && inQuotes:
			inQuotes = false
			qEnd = cur.Len()
		case c == '"':
			inQuotes = true
			if qStart < 0 {
				qStart = cur.Len()
			}
		case c == ',' && !inQuotes:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	if inQuotes {
		qEnd = cur.Len()
	}
	flush()
	return fields
}

// JoinRow is the inverse of SplitRow. Fields holding a comma, a quote, a line
// break or leading or trailing space are quoted.
func JoinRow(fields []string) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		if !needsQuotes(f) {
			b.WriteString(f)
			continue
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	return b.String()
}

func needsQuotes(f string) bool {
	if f == "" {
		return false
	}
	if strings.ContainsAny(f, ",\"\r\n") {
		return true
	}
	return strings.TrimSpace(f) != f
}

// SplitLines splits file content into lines without their terminators.
// A trailing newline does not produce an empty last line.
func SplitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

func field(fields []string, col int) string {
	if col < len(fields) {
		return fields[col]
	}
	return ""
}

func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "TRUE")
}

func formatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// rowDecoder collects the location of a row so numeric failures can be
// reported without repeating it at every call site.
type rowDecoder struct {
	kind   string
	row    int
	fields []string
	err    error
}

func (d *rowDecoder) intAt(col int) int {
	return int(d.int64At(col))
}

func (d *rowDecoder) int64At(col int) int64 {
	if d.err != nil {
		return 0
	}
	raw := field(d.fields, col)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		d.err = &DecodeError{Kind: d.kind, Row: d.row, Column: col, Reason: ReasonNotNumeric, Value: raw}
		return 0
	}
	return v
}

func (d *rowDecoder) fail(col int, reason Reason) {
	if d.err == nil {
		d.err = &DecodeError{Kind: d.kind, Row: d.row, Column: col, Reason: reason, Value: field(d.fields, col)}
	}
}

func headerMatches(fields []string, want ...string) bool {
	if len(fields) < len(want) {
		return false
	}
	for i, w := range want {
		if !strings.EqualFold(fields[i], w) {
			return false
		}
	}
	return true
}
