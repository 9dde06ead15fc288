package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrDateFormat matches every date parsing failure.
var ErrDateFormat = errors.New("validators: unable to parse date")

var (
	nonDigits      = regexp.MustCompile(`[^\d]+`)
	secondsPattern = regexp.MustCompile(`^(\d{2})(?:\.(\d{6}))?$`)
	offsetSuffix   = regexp.MustCompile(`(Z|[+-]\d{2}:?\d{2})$`)
)

// ParseDate parses an ISO-like date or date-time without zone information.
// The input is split on runs of non-digits into at most six groups: year,
// month, day, hour, minute and seconds with an optional fraction of exactly
// six digits (microseconds). The result is a naive wall clock carried in time.UTC.
func ParseDate(s string) (time.Time, error) {
	groups := nonDigits.Split(s, 6)
	if len(groups) < 3 {
		return time.Time{}, fmt.Errorf("%w: %q needs year, month and day", ErrDateFormat, s)
	}

	var nums [5]int
	for i := 0; i < len(groups) && i < 5; i++ {
		n, err := strconv.Atoi(groups[i])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormat, s)
		}
		nums[i] = n
	}

	seconds, micros := 0, 0
	if len(groups) == 6 {
		m := secondsPattern.FindStringSubmatch(groups[5])
		if m == nil {
			return time.Time{}, fmt.Errorf("%w: unable to parse %q as seconds", ErrDateFormat, groups[5])
		}
		seconds, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			micros, _ = strconv.Atoi(m[2])
		}
	}

	year, month, day, hour, minute := nums[0], nums[1], nums[2], nums[3], nums[4]
	if err := checkRanges(year, month, day, hour, minute, seconds); err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrDateFormat, s, err)
	}
	return time.Date(year, time.Month(month), day, hour, minute, seconds, micros*int(time.Microsecond), time.UTC), nil
}

// ParseDateTZ parses like ParseDate and additionally honours a trailing "Z"
// or ±HH[:]MM offset after the time portion. The instant is returned in UTC;
// inputs without an offset are taken as UTC.
func ParseDateTZ(s string) (time.Time, error) {
	body, offset, hasOffset, err := splitOffset(s)
	if err != nil {
		return time.Time{}, err
	}
	naive, err := ParseDate(body)
	if err != nil {
		return time.Time{}, err
	}
	if !hasOffset {
		return naive, nil
	}
	zone := time.FixedZone("", offset)
	local := time.Date(naive.Year(), naive.Month(), naive.Day(), naive.Hour(), naive.Minute(), naive.Second(), naive.Nanosecond(), zone)
	return local.UTC(), nil
}

// splitOffset only looks for an offset once a time portion is present, so
// the day of a bare "2020-01-15" is never read as an offset.
func splitOffset(s string) (string, int, bool, error) {
	loc := offsetSuffix.FindStringIndex(s)
	if loc == nil {
		return s, 0, false, nil
	}
	body, suffix := s[:loc[0]], s[loc[0]:]
	if !strings.ContainsAny(body, "T ") {
		return s, 0, false, nil
	}
	if suffix == "Z" {
		return body, 0, true, nil
	}

	sign := 1
	if suffix[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(suffix[1:], ":", "")
	hours, _ := strconv.Atoi(digits[:2])
	minutes, _ := strconv.Atoi(digits[2:])
	if hours > 23 || minutes > 59 {
		return "", 0, false, fmt.Errorf("%w: offset %q out of range", ErrDateFormat, suffix)
	}
	return body, sign * (hours*3600 + minutes*60), true, nil
}

func checkRanges(year, month, day, hour, minute, second int) error {
	switch {
	case year < 1 || year > 9999:
		return fmt.Errorf("year %d out of range", year)
	case month < 1 || month > 12:
		return fmt.Errorf("month %d out of range", month)
	case day < 1 || day > daysIn(year, month):
		return fmt.Errorf("day %d out of range", day)
	case hour > 23:
		return fmt.Errorf("hour %d out of range", hour)
	case minute > 59:
		return fmt.Errorf("minute %d out of range", minute)
	case second > 59:
		return fmt.Errorf("second %d out of range", second)
	}
	return nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
