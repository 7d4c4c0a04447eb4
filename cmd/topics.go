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
	"strings"

	"github.com/spf13/cobra"

	"github.com/ademuri/watch-history-tools/internal/session"
)

var topicsNumber int

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Gets the most common keywords in video titles",
	Long:  `Korean and English keywords, with synonyms merged, plus the inferred content categories.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := withCachedSession(func(sess *session.Session) error {
			return printTopics(os.Stdout, sess, topicsNumber)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)

	topicsCmd.Flags().IntVarP(&topicsNumber, "number", "n", 20, "number of keywords to return")
}

func printTopics(out io.Writer, sess *session.Session, limit int) error {
	ta, err := sess.Topics(limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, Analysis{
		results: keywordTable(ta.Keywords),
		summary: fmt.Sprintf("Extracted %d keywords (%d Korean, %d English) using the %s extractor. Categories: %s",
			len(ta.Keywords), ta.LanguageBreakdown.Korean, ta.LanguageBreakdown.English,
			sess.Extractor().Name(), strings.Join(ta.Categories, ", ")),
	})
	return nil
}
