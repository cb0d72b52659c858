// Package phpdate formats times using the single-letter date patterns common
// to CMS templates, such as "m/d/Y" or "F j, Y".
//
// Each letter expands to one field of the time. A backslash prints the
// following character literally, and characters that are not pattern letters
// are copied through unchanged.
package phpdate

import (
	"fmt"
	"strconv"
	"time"
)

// Default is the pattern used when none is given: 01/05/2024.
const Default = "m/d/Y"

// Format renders t according to layout.
func Format(t time.Time, layout string) string {
	buf := make([]byte, 0, len(layout)*2)
	for i := 0; i < len(layout); i++ {
		c := layout[i]
		if c == '\\' {
			if i+1 < len(layout) {
				i++
				buf = append(buf, layout[i])
			}
			continue
		}
		buf = appendField(buf, t, c)
	}
	return string(buf)
}

func appendField(buf []byte, t time.Time, c byte) []byte {
	switch c {
	// Day
	case 'd':
		return appendPad(buf, t.Day(), 2)
	case 'D':
		return append(buf, t.Weekday().String()[:3]...)
	case 'j':
		return strconv.AppendInt(buf, int64(t.Day()), 10)
	case 'l':
		return append(buf, t.Weekday().String()...)
	case 'N':
		wd := int(t.Weekday())
		if wd == 0 {
			wd = 7
		}
		return strconv.AppendInt(buf, int64(wd), 10)
	case 'S':
		return append(buf, ordinalSuffix(t.Day())...)
	case 'w':
		return strconv.AppendInt(buf, int64(t.Weekday()), 10)
	case 'z':
		return strconv.AppendInt(buf, int64(t.YearDay()-1), 10)

	// Week
	case 'W':
		_, week := t.ISOWeek()
		return appendPad(buf, week, 2)

	// Month
	case 'F':
		return append(buf, t.Month().String()...)
	case 'm':
		return appendPad(buf, int(t.Month()), 2)
	case 'M':
		return append(buf, t.Month().String()[:3]...)
	case 'n':
		return strconv.AppendInt(buf, int64(t.Month()), 10)
	case 't':
		return strconv.AppendInt(buf, int64(daysIn(t)), 10)

	// Year
	case 'L':
		if isLeap(t.Year()) {
			return append(buf, '1')
		}
		return append(buf, '0')
	case 'o':
		year, _ := t.ISOWeek()
		return strconv.AppendInt(buf, int64(year), 10)
	case 'Y':
		return appendPad(buf, t.Year(), 4)
	case 'y':
		return appendPad(buf, t.Year()%100, 2)

	// Time
	case 'a':
		if t.Hour() < 12 {
			return append(buf, "am"...)
		}
		return append(buf, "pm"...)
	case 'A':
		if t.Hour() < 12 {
			return append(buf, "AM"...)
		}
		return append(buf, "PM"...)
	case 'B':
		return appendPad(buf, swatch(t), 3)
	case 'g':
		return strconv.AppendInt(buf, int64(hour12(t)), 10)
	case 'G':
		return strconv.AppendInt(buf, int64(t.Hour()), 10)
	case 'h':
		return appendPad(buf, hour12(t), 2)
	case 'H':
		return appendPad(buf, t.Hour(), 2)
	case 'i':
		return appendPad(buf, t.Minute(), 2)
	case 's':
		return appendPad(buf, t.Second(), 2)
	case 'u':
		return appendPad(buf, t.Nanosecond()/1000, 6)
	case 'v':
		return appendPad(buf, t.Nanosecond()/1000000, 3)

	// Timezone
	case 'e':
		return append(buf, t.Location().String()...)
	case 'I':
		if t.IsDST() {
			return append(buf, '1')
		}
		return append(buf, '0')
	case 'O':
		return appendOffset(buf, t, false)
	case 'P':
		return appendOffset(buf, t, true)
	case 'p':
		if _, off := t.Zone(); off == 0 {
			return append(buf, 'Z')
		}
		return appendOffset(buf, t, true)
	case 'T':
		name, _ := t.Zone()
		return append(buf, name...)
	case 'Z':
		_, off := t.Zone()
		return strconv.AppendInt(buf, int64(off), 10)

	// Full date/time
	case 'c':
		return append(buf, Format(t, `Y-m-d\TH:i:sP`)...)
	case 'r':
		return append(buf, Format(t, "D, d M Y H:i:s O")...)
	case 'U':
		return strconv.AppendInt(buf, t.Unix(), 10)
	}
	return append(buf, c)
}

func appendPad(buf []byte, n, width int) []byte {
	if n < 0 {
		buf = append(buf, '-')
		n = -n
	}
	return append(buf, fmt.Sprintf("%0*d", width, n)...)
}

func appendOffset(buf []byte, t time.Time, colon bool) []byte {
	_, off := t.Zone()
	sign := byte('+')
	if off < 0 {
		sign = '-'
		off = -off
	}
	buf = append(buf, sign)
	buf = appendPad(buf, off/3600, 2)
	if colon {
		buf = append(buf, ':')
	}
	return appendPad(buf, (off%3600)/60, 2)
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	return h
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// swatch returns Swatch Internet time, measured from UTC+1.
func swatch(t time.Time) int {
	u := t.UTC()
	secs := (u.Hour()*3600 + u.Minute()*60 + u.Second() + 3600) % 86400
	return secs * 1000 / 86400
}
