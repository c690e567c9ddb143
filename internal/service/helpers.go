package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/maheshrc27/dreamwall/internal/transfer"
)

// validateInput runs struct-tag validation and reports failures as
// invalid input.
func validateInput(s any) error {
	if err := transfer.Validate(s); err != nil {
		return invalid(err.Error())
	}
	return nil
}

// trimmed returns a trimmed copy of an optional string so validation sees
// the value that gets stored.
func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatPostID builds the public post identifier from the creation time and
// the day's sequence number.
func FormatPostID(t time.Time, seq int64) string {
	return fmt.Sprintf("%04d_%02d_%02d_%02d_HEMUNG_%03d", t.Year(), int(t.Month()), t.Day(), t.Hour(), seq)
}
