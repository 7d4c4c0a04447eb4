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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ademuri/watch-history-tools/internal/analysis"
	"github.com/ademuri/watch-history-tools/internal/session"
)

var contentNumber int

var timePatternsCmd = &cobra.Command{
	Use:   "time-patterns",
	Short: "Shows when videos are watched",
	Long:  `Hourly distribution in UTC, peak hours and days, and the late-night and weekend ratios.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := withCachedSession(func(sess *session.Session) error {
			return printTimePatterns(os.Stdout, sess)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var contentByTimeCmd = &cobra.Command{
	Use:   "content-by-time",
	Short: "Shows what is watched in each part of the day",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := withCachedSession(func(sess *session.Session) error {
			return printContentByTime(os.Stdout, sess, contentNumber)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(timePatternsCmd)
	rootCmd.AddCommand(contentByTimeCmd)

	contentByTimeCmd.Flags().IntVarP(&contentNumber, "number", "n", analysis.DefaultContentTopN, "number of keywords per time slot")
}

func printTimePatterns(out io.Writer, sess *session.Session) error {
	p, err := sess.TimePatterns()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, Analysis{
		results: hourTable(p.HourlyDistribution),
		summary: fmt.Sprintf("Peak hours: %s. Peak days: %s. Late night: %s, weekend: %s.\n%s",
			formatHours(p.PeakHours), strings.Join(p.PeakDays, ", "),
			percent(p.LateNightRatio), percent(p.WeekendRatio), analysis.TimeInsight(p)),
	})
	return nil
}

func printContentByTime(out io.Writer, sess *session.Session, topN int) error {
	slots, err := sess.ContentByTime(topN)
	if err != nil {
		return err
	}
	results := [][]string{{"Slot", "Hours", "Videos", "Categories", "Keywords"}}
	for _, s := range slots {
		results = append(results, []string{
			s.Slot, s.HourRange, strconv.Itoa(s.VideoCount),
			strings.Join(s.TopCategories, ", "), strings.Join(s.TopKeywords, ", "),
		})
	}
	fmt.Fprintln(out, Analysis{
		results: results,
		summary: strings.Join(analysis.ContentInsights(slots), "\n"),
	})
	return nil
}
