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

var monthlyNumber int
var phaseMinDays int

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Shows viewing per calendar month and the overall trend",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := withCachedSession(func(sess *session.Session) error {
			return printMonthly(os.Stdout, sess, monthlyNumber)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "Detects stretches of weeks dominated by one kind of content",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := withCachedSession(func(sess *session.Session) error {
			return printPhases(os.Stdout, sess, phaseMinDays)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
	rootCmd.AddCommand(phasesCmd)

	monthlyCmd.Flags().IntVarP(&monthlyNumber, "number", "n", analysis.DefaultMonthlyTopN, "number of categories and channels per month")
	phasesCmd.Flags().IntVar(&phaseMinDays, "min-days", analysis.DefaultMinPhaseDays, "minimum phase length in days")
}

func printMonthly(out io.Writer, sess *session.Session, topN int) error {
	months, err := sess.MonthlyTrends(topN)
	if err != nil {
		return err
	}
	results := [][]string{{"Month", "Videos", "Per day", "Categories", "Channels"}}
	for _, m := range months {
		results = append(results, []string{
			m.Month, strconv.Itoa(m.VideoCount), fmt.Sprintf("%.1f", m.AvgDailyVideos),
			strings.Join(m.TopCategories, ", "), strings.Join(m.TopChannels, ", "),
		})
	}
	trend := analysis.SummarizeTrend(months)
	fmt.Fprintln(out, Analysis{
		results: results,
		summary: fmt.Sprintf("Analyzed %d months of viewing history. Trend: %s (%+.1f%%)",
			len(months), trend.Label, trend.GrowthPercent),
	})
	return nil
}

func printPhases(out io.Writer, sess *session.Session, minDays int) error {
	phases, err := sess.Phases(minDays)
	if err != nil {
		return err
	}
	results := [][]string{{"Period", "Phase", "Weeks", "Videos", "Categories"}}
	for _, p := range phases {
		results = append(results, []string{
			p.Period, p.Name, strconv.Itoa(p.Weeks), strconv.Itoa(p.VideoCount),
			strings.Join(p.DominantCategories, ", "),
		})
	}
	fmt.Fprintln(out, Analysis{
		results: results,
		summary: fmt.Sprintf("Detected %d distinct viewing phases", len(phases)),
	})
	return nil
}
