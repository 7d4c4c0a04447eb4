/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"strings"
	"testing"
	"time"
)

func TestGetImplicitDateRange_year(t *testing.T) {
	doTestGetImplicitDateRange(t, "2020", "2021", "2006")
}

func TestGetImplicitDateRange_month(t *testing.T) {
	doTestGetImplicitDateRange(t, "2020-01", "2020-02", "2006-01")
}

func TestGetImplicitDateRange_day(t *testing.T) {
	doTestGetImplicitDateRange(t, "2020-01-01", "2020-01-02", "2006-01-02")
}

func TestGetImplicitDateRange_invalid(t *testing.T) {
	for _, ds := range []string{"2020-01-0123", "not_real", "12x", ""} {
		_, _, err := getImplicitDateRange(ds)
		if err == nil {
			t.Fatalf("Expected error parsing %q", ds)
		}
		if !strings.Contains(err.Error(), "Invalid format") {
			t.Fatalf("Should have error with invalid format: %v", err)
		}
	}
}

func TestGetImplicitDateRange_relative(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return now }
	defer func() { timeNow = time.Now }()

	start, end, err := getImplicitDateRange("2w")
	if err != nil {
		t.Fatalf("getImplicitDateRange(2w): %v", err)
	}
	if want := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if !end.Equal(now) {
		t.Errorf("end = %v, want %v", end, now)
	}
}

func doTestGetImplicitDateRange(t *testing.T, startString string, endString string, format string) {
	start, end, err := getImplicitDateRange(startString)
	if err != nil {
		t.Fatalf("Parsing %q: %v", startString, err)
	}

	expectedStart, err := time.Parse(format, startString)
	if err != nil {
		t.Fatalf("Constructing expectedStart: %v", err)
	}

	expectedEnd, err := time.Parse(format, endString)
	if err != nil {
		t.Fatalf("Constructing expectedEnd: %v", err)
	}

	if start != expectedStart {
		t.Fatalf("Expected start to be %v, got %v", expectedStart, start)
	}

	if end != expectedEnd {
		t.Fatalf("Expected end to be %v, got %v", expectedEnd, end)
	}
}

func TestGetExplicitDateRange_valid(t *testing.T) {
	const startString = "2020"
	const endString = "2020-02-01"
	expectedStart, err := time.Parse("2006", startString)
	if err != nil {
		t.Fatalf("Constructing expectedStart: %v", err)
	}

	expectedEnd, err := time.Parse("2006-01-02", endString)
	if err != nil {
		t.Fatalf("Constructing expectedEnd: %v", err)
	}

	start, end, err := getExplicitDateRange(startString, endString)
	if err != nil {
		t.Fatalf("getExplicitDateRange(%q, %q): %v", startString, endString, err)
	}

	if start != expectedStart {
		t.Fatalf("Expected start to be %v, got %v", expectedStart, start)
	}

	if end != expectedEnd {
		t.Fatalf("Expected end to be %v, got %v", expectedEnd, end)
	}
}

func TestParseSingleDatestring_Relative(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return now }
	defer func() { timeNow = time.Now }()

	tests := []struct {
		input    string
		expected time.Time
	}{
		{"30d", now.AddDate(0, 0, -30)},
		{"12w", now.AddDate(0, 0, -84)},
		{"6m", now.AddDate(0, -6, 0)},
		{"10y", now.AddDate(-10, 0, 0)},
	}

	for _, tc := range tests {
		pd, err := parseSingleDatestring(tc.input)
		if err != nil {
			t.Errorf("parseSingleDatestring(%q) returned error: %v", tc.input, err)
			continue
		}
		if !pd.Relative || !pd.Date.Equal(tc.expected) {
			t.Errorf("parseSingleDatestring(%q) = %+v; want %v", tc.input, pd, tc.expected)
		}
	}
}

func TestGetExplicitDateRange_invalid(t *testing.T) {
	_, _, err := getExplicitDateRange("2020", "abc")
	if err == nil {
		t.Fatalf("Expected error when parsing invalid datestring")
	}
}

func TestParseDateRangeFromArgs_count(t *testing.T) {
	if _, _, err := parseDateRangeFromArgs(nil); err == nil {
		t.Errorf("Expected error with no arguments")
	}
	if _, _, err := parseDateRangeFromArgs([]string{"2020", "2021", "2022"}); err == nil {
		t.Errorf("Expected error with three arguments")
	}
}
