package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/oscardash/internal/common"
)

// acceptedDateLayouts are tried in order by NormalizeDate.
var acceptedDateLayouts = []string{
	common.DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006/01/02",
}

// NormalizeDate renders s as YYYY-MM-DD. The calendar date is taken as
// written: an RFC 3339 offset is parsed but never applied.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedDateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d), nil
	}
	return "", fmt.Errorf("%w: unrecognized date %q", common.ErrorValidation, s)
}
