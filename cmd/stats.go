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

	"github.com/spf13/cobra"

	"github.com/ademuri/watch-history-tools/internal/analysis"
	"github.com/ademuri/watch-history-tools/internal/session"
)

var statsNumber int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Shows overall statistics for the loaded history",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := withCachedSession(func(sess *session.Session) error {
			return printStats(os.Stdout, sess, statsNumber)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var diversityCmd = &cobra.Command{
	Use:   "diversity",
	Short: "Scores how spread out viewing is across channels",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := withCachedSession(func(sess *session.Session) error {
			return printDiversity(os.Stdout, sess)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var channelCmd = &cobra.Command{
	Use:   "channel [name]",
	Short: "Shows statistics for one channel",
	Long:  `Matches every channel whose name contains the argument, ignoring case.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withCachedSession(func(sess *session.Session) error {
			return printChannel(os.Stdout, sess, args[0])
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(diversityCmd)
	rootCmd.AddCommand(channelCmd)

	statsCmd.Flags().IntVarP(&statsNumber, "number", "n", 20, "number of top channels to show")
}

func printStats(out io.Writer, sess *session.Session, numChannels int) error {
	stats, err := sess.Statistics()
	if err != nil {
		return err
	}
	printStatistics(out, stats, numChannels)
	return printDiversity(out, sess)
}

func printDiversity(out io.Writer, sess *session.Session) error {
	d, err := sess.Diversity()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, Analysis{
		results: [][]string{
			{"Measure", "Value"},
			{"Channel entropy", fmt.Sprintf("%.2f", d.ChannelEntropy)},
			{"Top 5 channel share", fmt.Sprintf("%.1f%%", d.TopChannelConcentration)},
			{"Unique channel ratio", percent(d.UniqueRatio)},
		},
		summary: fmt.Sprintf("Diversity score: %v/100 - %s", d.OverallScore, d.Interpretation),
	})
	return nil
}

func printChannel(out io.Writer, sess *session.Session, name string) error {
	stats, err := sess.ChannelStats(name)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, Analysis{
		results: hourTable(stats.HourlyDistribution),
		summary: channelSummary(stats),
	})
	return nil
}

func channelSummary(stats analysis.ChannelStats) string {
	const dateFormat = "2006-01-02"
	return fmt.Sprintf("Found %d videos from %s between %s and %s (%d days). Peak hours: %s",
		stats.TotalVideos, stats.Channel,
		stats.FirstWatched.Format(dateFormat), stats.LastWatched.Format(dateFormat),
		stats.ViewingPeriodDays, formatHours(stats.PeakHours))
}
