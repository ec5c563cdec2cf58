package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

const DateLayout = "2006-01-02"

var (
	dmyRegex      = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	offsetRegex   = regexp.MustCompile(`^([+-])(\d+)([dw])$`)
	relativeRegex = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks)$`)
	clockRegex    = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

var natural = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// ParseDate turns user input into a YYYY-MM-DD date.
// Supported formats:
// - YYYY-MM-DD (e.g., "2024-12-15")
// - dd/mm/yyyy (e.g., "15/12/2024")
// - today
// - +Nd / -Nd / +Nw (e.g., "+3d", "-1d", "+2w")
// - X days / X weeks from now (e.g., "3 days")
// - plain English handled by when (e.g., "tomorrow", "next friday")
//
// Empty input yields an empty date.
func ParseDate(input string, now time.Time) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if input == "today" {
		return today.Format(DateLayout), nil
	}

	if t, err := time.Parse(DateLayout, input); err == nil {
		return t.Format(DateLayout), nil
	}

	if matches := dmyRegex.FindStringSubmatch(input); matches != nil {
		return parseDayMonthYear(matches)
	}

	if matches := offsetRegex.FindStringSubmatch(input); matches != nil {
		n, _ := strconv.Atoi(matches[2])
		if matches[3] == "w" {
			n *= 7
		}
		if matches[1] == "-" {
			n = -n
		}
		return today.AddDate(0, 0, n).Format(DateLayout), nil
	}

	if matches := relativeRegex.FindStringSubmatch(input); matches != nil {
		n, _ := strconv.Atoi(matches[1])
		if strings.HasPrefix(matches[2], "week") {
			n *= 7
		}
		return today.AddDate(0, 0, n).Format(DateLayout), nil
	}

	r, err := natural.Parse(input, now)
	if err == nil && r != nil {
		return r.Time.Format(DateLayout), nil
	}

	return "", fmt.Errorf("invalid date %q. Use: YYYY-MM-DD, dd/mm/yyyy, today, +Nd, or X days", input)
}

func parseDayMonthYear(matches []string) (string, error) {
	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if month < 1 || month > 12 {
		return "", fmt.Errorf("month must be between 1 and 12")
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Rejects 31/02 and friends
	if date.Day() != day || date.Month() != time.Month(month) {
		return "", fmt.Errorf("invalid date %s", matches[0])
	}
	return date.Format(DateLayout), nil
}

// ParseClock normalises a time of day to HH:MM. RFC 3339 timestamps pass
// through unchanged.
func ParseClock(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	if _, err := time.Parse(time.RFC3339, input); err == nil {
		return input, nil
	}

	matches := clockRegex.FindStringSubmatch(input)
	if matches == nil {
		return "", fmt.Errorf("invalid time %q. Use: HH:MM", input)
	}
	hour, _ := strconv.Atoi(matches[1])
	minute, _ := strconv.Atoi(matches[2])
	if hour > 23 || minute > 59 {
		return "", fmt.Errorf("invalid time %q", input)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// ParseHours reads an hour count. Plain numbers use strconv.ParseFloat
// semantics; durations such as "1h30m" are converted to hours.
func ParseHours(input string) (float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}

	hours, err := strconv.ParseFloat(input, 64)
	if err != nil {
		d, derr := time.ParseDuration(input)
		if derr != nil {
			return 0, fmt.Errorf("invalid number %q. Use hours (1.5) or a duration (1h30m)", input)
		}
		hours = d.Hours()
	}
	if hours < 0 {
		return 0, fmt.Errorf("hours cannot be negative")
	}
	return hours, nil
}

// FormatDate renders a stored date for display, e.g. "15/01/2024 (3 days ago)"
func FormatDate(date string, now time.Time) string {
	if date == "" {
		return "-"
	}

	t, err := time.Parse(DateLayout, date)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, date); err != nil {
			return date
		}
		return t.Format("02/01/2006 15:04")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if t.Equal(today) {
		return fmt.Sprintf("%s (today)", t.Format("02/01/2006"))
	}
	return fmt.Sprintf("%s (%s)", t.Format("02/01/2006"), humanize.RelTime(t, today, "ago", "from now"))
}

// FormatHours renders an optional hour count, e.g. "1.5h"
func FormatHours(hours *float64) string {
	if hours == nil {
		return "-"
	}
	return humanize.FtoaWithDigits(*hours, 2) + "h"
}
