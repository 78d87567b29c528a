package cache

import (
	"fmt"
	"strconv"
	"strings"
)

var monthNumbers = map[string]int{
	"January": 1, "February": 2, "March": 3, "April": 4,
	"May": 5, "June": 6, "July": 7, "August": 8,
	"September": 9, "October": 10, "November": 11, "December": 12,
}

// dateSortKey converts the source's locale-formatted date string, e.g.
// "Sunday, September 13, 2015 at 3:44:42", into a lexicographically sortable
// "YYYY-MM-DD H:MM:SS" form. The date is zero-padded, the time is kept
// verbatim. Empty input stays empty so unparseable dates sort before
// everything else; input that does not even split into two comma-separated
// parts passes through unchanged.
func dateSortKey(dateStr string) string {
	if dateStr == "" {
		return ""
	}

	parts := strings.Split(dateStr, ", ")
	if len(parts) < 2 {
		return dateStr
	}

	monthDay := parts[1]
	yearTime := ""
	if len(parts) > 2 {
		yearTime = parts[2]
	}

	month := 1
	day := 1
	if fields := strings.Fields(monthDay); len(fields) > 0 {
		if m, ok := monthNumbers[fields[0]]; ok {
			month = m
		}
		if len(fields) > 1 {
			if d, err := strconv.Atoi(fields[1]); err == nil {
				day = d
			}
		}
	}

	year := 1970
	timePart := "00:00:00"
	if yt := strings.SplitN(yearTime, " at ", 2); len(yt) > 0 {
		if y, err := strconv.Atoi(yt[0]); err == nil {
			year = y
		}
		if len(yt) > 1 {
			timePart = yt[1]
		}
	}

	return fmt.Sprintf("%04d-%02d-%02d %s", year, month, day, timePart)
}
