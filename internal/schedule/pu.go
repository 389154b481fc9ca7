// Package schedule parses pickup-reminder requests ("PU: 5 Sep, 15:40 PDT"
// plus an offset line) and arms the in-process timers that deliver them.
package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dispatchrepublic/trip-rate-bot/internal/models"
)

// ReminderText is sent when an armed reminder fires.
const ReminderText = "Load will be available on AI soon!"

// Lead is how far before PU minus the offset the reminder fires.
const Lead = 10 * time.Minute

// US timezone abbreviations as they appear in PU lines.
var tzAbbrZones = map[string]string{
	"PST":  "America/Los_Angeles",
	"PDT":  "America/Los_Angeles",
	"MST":  "America/Denver",
	"MDT":  "America/Denver",
	"CST":  "America/Chicago",
	"CDT":  "America/Chicago",
	"EST":  "America/New_York",
	"EDT":  "America/New_York",
	"AKST": "America/Anchorage",
	"AKDT": "America/Anchorage",
	"HST":  "Pacific/Honolulu",
	"HDT":  "Pacific/Honolulu",
	"UTC":  "UTC",
	"GMT":  "UTC",
}

var (
	puLinePattern = regexp.MustCompile(`(?im)^\s*PU\s*:\s*(.+?)\s*$`)
	// "5 Sep, 15:40 PDT"
	puDayFirstPattern = regexp.MustCompile(`(?i)(\d{1,2})\s+([A-Za-z]{3}),?\s+(\d{1,2}):(\d{2})\s+([A-Za-z]{2,4})`)
	// "Sep 5, 15:40 PDT"
	puMonthFirstPattern = regexp.MustCompile(`(?i)([A-Za-z]{3})\s+(\d{1,2}),?\s+(\d{1,2}):(\d{2})\s+([A-Za-z]{2,4})`)
	// "1h", "45m", "1h 5m", "2h5m"
	offsetPattern = regexp.MustCompile(`(?i)^(?:(\d{1,3})\s*h)?\s*(?:(\d{1,3})\s*m)?$`)
)

var monthAbbr = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Reminder is an armed-but-not-yet-sent chat reminder.
type Reminder struct {
	SendAt time.Time
	Text   string
}

// ParseRequest looks for a PU line plus an offset line. handled reports
// whether the message was a scheduling request at all; when it was but one
// half could not be parsed, replies carries the diagnostic to send. A PU
// line where neither half parses falls through as not handled so the other
// classifiers get a look at the message.
func ParseRequest(text string, now time.Time) (rem *Reminder, replies []models.Reply, handled bool) {
	m := puLinePattern.FindStringSubmatch(text)
	if m == nil {
		return nil, nil, false
	}

	pu, puOK := ParsePUTime(m[1], now)
	off, offOK := ParseOffset(text)

	switch {
	case puOK && offOK:
		rem = &Reminder{SendAt: pu.Add(-off).Add(-Lead), Text: ReminderText}
		return rem, []models.Reply{{Text: "noted", Threaded: true}}, true
	case puOK:
		return nil, []models.Reply{{
			Text:     "❗ Could not find the offset. Put '1h' or '1h 5m' on the next line.",
			Threaded: true,
		}}, true
	case offOK:
		return nil, []models.Reply{{
			Text:     "❗ Could not parse the PU time. Write it like '5 Sep, 15:40 PDT'.",
			Threaded: true,
		}}, true
	}
	return nil, nil, false
}

// ParsePUTime parses "5 Sep, 15:40 PDT" or "Sep 5, 15:40 PDT". The year is
// the current year in the stated zone; unknown abbreviations fall back to
// UTC rather than failing the whole request.
func ParsePUTime(s string, now time.Time) (time.Time, bool) {
	var dayStr, monStr, hourStr, minStr, tzStr string
	if m := puDayFirstPattern.FindStringSubmatch(s); m != nil {
		dayStr, monStr, hourStr, minStr, tzStr = m[1], m[2], m[3], m[4], m[5]
	} else if m := puMonthFirstPattern.FindStringSubmatch(s); m != nil {
		monStr, dayStr, hourStr, minStr, tzStr = m[1], m[2], m[3], m[4], m[5]
	} else {
		return time.Time{}, false
	}

	mon, ok := monthAbbr[strings.ToLower(monStr)]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(dayStr)
	hour, _ := strconv.Atoi(hourStr)
	min, _ := strconv.Atoi(minStr)
	if day < 1 || day > 31 || hour > 23 || min > 59 {
		return time.Time{}, false
	}

	loc := zoneFor(tzStr)
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(now.In(loc).Year(), mon, day, hour, min, 0, 0, loc), true
}

// ParseOffset finds the first line of the message that is purely an offset
// ("1h", "45m", "1h 5m"). The PU line itself is skipped.
func ParseOffset(text string) (time.Duration, bool) {
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "PU:") {
			continue
		}
		m := offsetPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil || (m[1] == "" && m[2] == "") {
			continue
		}
		h, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		return time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute, true
	}
	return 0, false
}

func zoneFor(abbr string) *time.Location {
	name, ok := tzAbbrZones[strings.ToUpper(abbr)]
	if !ok {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil
	}
	return loc
}
