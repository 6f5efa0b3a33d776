package trade

import (
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/pkg/id"
)

// legacy ids are millisecond epoch timestamps; anything shorter is not one
const minLegacyIDLen = 12

// Logged returns the instant r was logged, used only to order records that
// share a Date. It falls back from CreatedAt to the time encoded in ID
// (ULID or millisecond epoch) and finally to the start of Date.
func (r Record) Logged() time.Time {
	if r.CreatedAt != nil && !r.CreatedAt.IsZero() {
		return r.CreatedAt.UTC()
	}
	if t, ok := id.Time(r.ID); ok {
		return t
	}
	if len(r.ID) >= minLegacyIDLen && isNumeric(r.ID) {
		if ms, err := strconv.ParseInt(r.ID, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC()
		}
	}
	t, _ := r.Date.Time()
	return t
}

func notDigit(c rune) bool { return c < '0' || c > '9' }

// Compare orders a before b chronologically: by Date, then Logged, then ID.
// Numeric ids compare as numbers.
func Compare(a, b Record) int {
	if c := strings.Compare(string(a.Date), string(b.Date)); c != 0 {
		return c
	}
	if c := a.Logged().Compare(b.Logged()); c != 0 {
		return c
	}
	return compareIDs(a.ID, b.ID)
}

// compareIDs orders all-digit ids numerically and ahead of any other id,
// which compare as strings.
func compareIDs(a, b string) int {
	na, nb := isNumeric(a), isNumeric(b)
	switch {
	case na && !nb:
		return -1
	case !na && nb:
		return 1
	case !na:
		return strings.Compare(a, b)
	}
	ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		return len(ta) - len(tb)
	}
	if c := strings.Compare(ta, tb); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func isNumeric(s string) bool {
	return s != "" && !strings.ContainsFunc(s, notDigit)
}
