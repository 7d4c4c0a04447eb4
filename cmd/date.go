package cmd

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ParsedDate is a datestring resolved to its start, plus the precision it
// was given at. Relative datestrings ("30d") count back from now.
type ParsedDate struct {
	Date     time.Time
	Year     bool
	Month    bool
	Day      bool
	Relative bool
}

var relativeDatePattern = regexp.MustCompile(`^(\d+)([dwmy])$`)

var absoluteDateFormats = []struct {
	pattern *regexp.Regexp
	layout  string
	set     func(*ParsedDate)
}{
	{regexp.MustCompile(`^\d{4}$`), "2006", func(d *ParsedDate) { d.Year = true }},
	{regexp.MustCompile(`^\d{4}-\d{2}$`), "2006-01", func(d *ParsedDate) { d.Month = true }},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02", func(d *ParsedDate) { d.Day = true }},
}

// timeNow is replaced in tests.
var timeNow = time.Now

func parseDateRangeFromArgs(args []string) (start time.Time, end time.Time, err error) {
	switch len(args) {
	case 1:
		start, end, err = getImplicitDateRange(args[0])

	case 2:
		start, end, err = getExplicitDateRange(args[0], args[1])

	default:
		err = fmt.Errorf("Expected one or two date arguments")
	}
	return
}

func getImplicitDateRange(ds string) (start time.Time, end time.Time, err error) {
	date, err := parseSingleDatestring(ds)
	if err != nil {
		return
	}

	start = date.Date
	switch {
	case date.Year:
		end = start.AddDate(1, 0, 0)

	case date.Month:
		end = start.AddDate(0, 1, 0)

	case date.Day:
		end = start.AddDate(0, 0, 1)

	case date.Relative:
		end = timeNow()

	default:
		err = fmt.Errorf("Invalid format: %q", ds)
	}

	return
}

func getExplicitDateRange(startString, endString string) (start time.Time, end time.Time, err error) {
	startParsed, err := parseSingleDatestring(startString)
	if err != nil {
		return
	}
	start = startParsed.Date

	endParsed, err := parseSingleDatestring(endString)
	if err != nil {
		return
	}
	end = endParsed.Date

	return
}

func parseSingleDatestring(ds string) (date ParsedDate, err error) {
	if m := relativeDatePattern.FindStringSubmatch(ds); m != nil {
		amount, convErr := strconv.Atoi(m[1])
		if convErr != nil {
			err = fmt.Errorf("Parsing relative datestring: %w", convErr)
			return
		}
		now := timeNow()
		switch m[2] {
		case "d":
			date.Date = now.AddDate(0, 0, -amount)
		case "w":
			date.Date = now.AddDate(0, 0, -amount*7)
		case "m":
			date.Date = now.AddDate(0, -amount, 0)
		case "y":
			date.Date = now.AddDate(-amount, 0, 0)
		}
		date.Relative = true
		return
	}

	for _, f := range absoluteDateFormats {
		if !f.pattern.MatchString(ds) {
			continue
		}
		date.Date, err = time.Parse(f.layout, ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring %q: %w", ds, err)
			return
		}
		f.set(&date)
		return
	}

	err = fmt.Errorf("Invalid format: %q", ds)
	return
}
