package utils

import (
	"fmt"
	"strings"
	"time"
)

// Format tanggal yang diterima dari form dan spreadsheet, DD-MM-YYYY lebih dulu.
var dateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
	time.RFC3339,
}

func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("format tanggal %q tidak dikenali, gunakan DD-MM-YYYY", s)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02-01-2006")
}
