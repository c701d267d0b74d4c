package extract

import (
	"regexp"
	"strconv"
	"time"
)

// The model is unreliable about dates, so publish dates are pulled from the
// announcement text with pattern matching wherever the source formats them
// predictably.
var (
	fdaMonthNamePattern = regexp.MustCompile(`FDA Publish Date:\s*([A-Za-z]+)\s+(\d{1,2}),\s+(\d{4})`)
	fdaNumericPattern   = regexp.MustCompile(`FDA Publish Date:\s*(\d{1,2})/(\d{1,2})/(\d{4})`)
	fdaISOPattern       = regexp.MustCompile(`FDA Publish Date:\s*(\d{4})-(\d{2})-(\d{2})`)

	// FSIS announcements open with "Day, MM/DD/YYYY - Current".
	usdaHeaderPattern = regexp.MustCompile(`([A-Za-z]+),\s*(\d{1,2})/(\d{1,2})/(\d{4})\s*-\s*Current`)
)

var monthNumbers = map[string]time.Month{
	"January":   time.January,
	"February":  time.February,
	"March":     time.March,
	"April":     time.April,
	"May":       time.May,
	"June":      time.June,
	"July":      time.July,
	"August":    time.August,
	"September": time.September,
	"October":   time.October,
	"November":  time.November,
	"December":  time.December,
}

// FDAPublishDate extracts the "FDA Publish Date:" field from FDA announcement
// text. It accepts month-name, MM/DD/YYYY, and YYYY-MM-DD formats.
func FDAPublishDate(content string) (time.Time, bool) {
	if m := fdaMonthNamePattern.FindStringSubmatch(content); m != nil {
		if month, ok := monthNumbers[m[1]]; ok {
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			if t, ok := makeDate(year, int(month), day); ok {
				return t, true
			}
		}
	}
	if m := fdaNumericPattern.FindStringSubmatch(content); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if t, ok := makeDate(year, month, day); ok {
			return t, true
		}
	}
	if m := fdaISOPattern.FindStringSubmatch(content); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if t, ok := makeDate(year, month, day); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// USDAAnnouncementDate extracts the announcement date from the FSIS header
// line ("Tue, 02/25/2025 - Current").
func USDAAnnouncementDate(content string) (time.Time, bool) {
	m := usdaHeaderPattern.FindStringSubmatch(content)
	if m == nil {
		return time.Time{}, false
	}
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	year, _ := strconv.Atoi(m[4])
	return makeDate(year, month, day)
}

// makeDate builds a UTC date, rejecting out-of-range components instead of
// letting time.Date normalize them (February 30 must not become March 2).
func makeDate(year, month, day int) (time.Time, bool) {
	if year < 1900 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return t, true
}
