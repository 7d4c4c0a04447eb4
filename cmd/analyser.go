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
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/ademuri/watch-history-tools/internal/analysis"
	"github.com/ademuri/watch-history-tools/internal/topics"
)

// Analysis is a table of results with a header row, plus a one-line summary.
type Analysis struct {
	results [][]string
	summary string
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	if len(a.results) > 1 {
		table := tablewriter.NewWriter(out)
		table.Header(a.results[0])
		for _, row := range a.results[1:] {
			if err := table.Append(row); err != nil {
				return fmt.Sprintf("Error rendering table: %v", err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if a.summary != "" {
		fmt.Fprintf(out, "%s\n", a.summary)
	}
	return out.String()
}

func channelTable(channels []analysis.ChannelCount) [][]string {
	results := [][]string{{"Channel", "Videos"}}
	for _, c := range channels {
		results = append(results, []string{c.Channel, strconv.Itoa(c.Count)})
	}
	return results
}

func keywordTable(keywords []topics.Keyword) [][]string {
	results := [][]string{{"Keyword", "Count"}}
	for _, k := range keywords {
		results = append(results, []string{k.Word, strconv.Itoa(k.Count)})
	}
	return results
}

// hourTable lists the hours in order, skipping hours with no videos.
func hourTable(hours map[int]int) [][]string {
	keys := make([]int, 0, len(hours))
	for h := range hours {
		keys = append(keys, h)
	}
	sort.Ints(keys)
	results := [][]string{{"Hour (UTC)", "Videos"}}
	for _, h := range keys {
		results = append(results, []string{fmt.Sprintf("%02d:00", h), strconv.Itoa(hours[h])})
	}
	return results
}

func formatHours(hours []int) string {
	s := make([]string, len(hours))
	for i, h := range hours {
		s[i] = fmt.Sprintf("%02d:00", h)
	}
	return strings.Join(s, ", ")
}

func percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
