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
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/watch-history-tools/internal/store"
)

var topChannelsNumber int
var topChannelsCmd = &cobra.Command{
	Use:   "top-channels [from] [to (optional)]",
	Short: "Gets the top channels from the archive",
	Long: `Uses the specified date or date range. Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd',
or count back from now like '30d', '12w', '6m' or '1y'.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTopChannels(os.Stdout, viper.GetString("database"), args, topChannelsNumber)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topChannelsCmd)

	topChannelsCmd.Flags().IntVarP(&topChannelsNumber, "number", "n", 10, "number of results to return")
}

func printTopChannels(out io.Writer, dbPath string, args []string, numToReturn int) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("Database doesn't exist - run analyze first.")
	}
	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("printTopChannels: %w", err)
	}
	defer db.Close()

	analysis, err := getTopChannels(db, start, end, numToReturn)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, analysis)
	return nil
}

func getTopChannels(db *store.Store, start, end time.Time, numToReturn int) (analysis Analysis, err error) {
	all, err := db.GetTopChannels(start, end, 0)
	if err != nil {
		err = fmt.Errorf("getTopChannels: %w", err)
		return
	}

	var numWatches int64
	analysis.results = [][]string{{"Channel", "Videos"}}
	for i, c := range all {
		if numToReturn == 0 || i < numToReturn {
			analysis.results = append(analysis.results, []string{c.Channel, strconv.FormatInt(c.Count, 10)})
		}
		numWatches += c.Count
	}

	const dateFormat = "2006-01-02"
	analysis.summary = fmt.Sprintf("Found %d channels and %d videos from %s to %s",
		len(all), numWatches, start.Format(dateFormat), end.Format(dateFormat))
	return
}
