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
	"github.com/spf13/viper"

	"github.com/ademuri/watch-history-tools/internal/analysis"
	"github.com/ademuri/watch-history-tools/internal/session"
)

var analyzeChannels int

// analyzeCmd loads an export, caches it and archives it in the database.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [watch-history.json]",
	Short: "Loads a watch history export",
	Long: `Parses a Google Takeout watch-history.json, prints overall statistics and caches the
result for the other commands. Entries are also appended to the SQLite archive.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := analyzeFile(os.Stdout, args[0], analyzeChannels)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Loads every archived watch from the database",
	Long:  `Replaces the cached history with all watches archived by previous analyze runs.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := restoreArchive(os.Stdout, analyzeChannels)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Deletes the cached watch history",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := clearCache(os.Stdout, viper.GetString("cache"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(clearCacheCmd)

	analyzeCmd.Flags().IntVarP(&analyzeChannels, "number", "n", 10, "number of top channels to show")
	restoreCmd.Flags().IntVarP(&analyzeChannels, "number", "n", 10, "number of top channels to show")
}

func analyzeFile(out io.Writer, path string, numChannels int) error {
	sess, close, err := openSession()
	if err != nil {
		return err
	}
	defer close()

	stats, err := sess.Load(path)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", path, err)
	}
	printStatistics(out, stats, numChannels)
	return nil
}

func restoreArchive(out io.Writer, numChannels int) error {
	sess, close, err := openSession()
	if err != nil {
		return err
	}
	defer close()

	stats, err := sess.LoadArchive()
	if err != nil {
		return err
	}
	printStatistics(out, stats, numChannels)
	return nil
}

func clearCache(out io.Writer, path string) error {
	if !session.New(path).ClearCache() {
		return fmt.Errorf("Failed to clear cache %s", path)
	}
	fmt.Fprintln(out, "Cache cleared successfully")
	return nil
}

func printStatistics(out io.Writer, stats analysis.Statistics, numChannels int) {
	top := stats.TopChannels
	if numChannels > 0 && len(top) > numChannels {
		top = top[:numChannels]
	}
	fmt.Fprintln(out, Analysis{
		results: channelTable(top),
		summary: fmt.Sprintf("Analyzed %d videos from %d channels, %s (%.2f videos/day)",
			stats.TotalVideos, stats.UniqueChannels, stats.DateRange(), stats.VideosPerDayAvg),
	})
}
