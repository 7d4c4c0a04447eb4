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
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ademuri/watch-history-tools/internal/session"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports a summary of the analysis",
	Long:  `Writes statistics, top keywords, viewing patterns and diversity as markdown, json or yaml.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := withCachedSession(func(sess *session.Session) error {
			return printExport(os.Stdout, sess, exportFormat)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generates a comprehensive viewing profile",
	Long:  `Runs every analysis and writes the result, including music prompts, as YAML.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := withCachedSession(func(sess *session.Session) error {
			return printReport(os.Stdout, sess, time.Now())
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggests content based on the taste profile and schedule",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := withCachedSession(func(sess *session.Session) error {
			return printSuggestions(os.Stdout, sess)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(suggestCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "markdown", "output format: markdown, json or yaml")
}

func printExport(out io.Writer, sess *session.Session, format string) error {
	content, err := sess.Export(format)
	if err != nil {
		return err
	}
	fmt.Fprint(out, content)
	if !strings.HasSuffix(content, "\n") {
		fmt.Fprintln(out)
	}
	return nil
}

func printReport(out io.Writer, sess *session.Session, now time.Time) error {
	report, err := sess.Report(now)
	if err != nil {
		return fmt.Errorf("analyzing data: %w", err)
	}
	encoded, err := report.YAML()
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	fmt.Fprint(out, encoded)
	return nil
}

func printSuggestions(out io.Writer, sess *session.Session) error {
	s, err := sess.Suggest()
	if err != nil {
		return err
	}
	results := [][]string{{"Kind", "Suggestion"}}
	for _, v := range s.Suggestions.BasedOnGenres {
		results = append(results, []string{"Genre", v})
	}
	for _, v := range s.Suggestions.ExploreNew {
		results = append(results, []string{"Explore", v})
	}
	slots := make([]string, 0, len(s.Suggestions.TimeBased))
	for slot := range s.Suggestions.TimeBased {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	for _, slot := range slots {
		for _, v := range s.Suggestions.TimeBased[slot] {
			results = append(results, []string{strings.ReplaceAll(slot, "_", " "), v})
		}
	}
	fmt.Fprintln(out, Analysis{
		results: results,
		summary: fmt.Sprintf("Current favorites: %s. Genres: %s",
			strings.Join(s.CurrentFavorites, ", "), strings.Join(s.PrimaryGenres, ", ")),
	})
	return nil
}
