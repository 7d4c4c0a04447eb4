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

	"github.com/ademuri/watch-history-tools/internal/generator"
	"github.com/ademuri/watch-history-tools/internal/session"
)

var promptsNumber int

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Generates a music prompt from the viewing taste profile",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := withCachedSession(func(sess *session.Session) error {
			return printPrompt(os.Stdout, sess)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Generates the main music prompt plus variations",
	Long:  `Variations shift energy, mood, instruments or genre. At most five prompts are generated.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := withCachedSession(func(sess *session.Session) error {
			return printPrompts(os.Stdout, sess, promptsNumber)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(promptsCmd)

	promptsCmd.Flags().IntVarP(&promptsNumber, "number", "n", 3, "number of prompts, 1-5")
}

func printPrompt(out io.Writer, sess *session.Session) error {
	profile, prompt, err := sess.Prompt()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, Analysis{
		results: [][]string{
			{"Profile", "Value"},
			{"Genres", strings.Join(profile.PrimaryGenres, ", ")},
			{"Moods", strings.Join(profile.MoodKeywords, ", ")},
			{"Energy", profile.EnergyLevel},
			{"Tempo", profile.TempoPreference},
			{"Time context", profile.TimeContext},
			{"Language", profile.LanguagePreference},
		},
	})
	fmt.Fprintln(out, prompt.FullPrompt)
	return nil
}

func printPrompts(out io.Writer, sess *session.Session, count int) error {
	prompts, err := sess.Prompts(count)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, Analysis{
		results: promptTable(prompts),
		summary: fmt.Sprintf("Generated %d prompt variations", len(prompts)),
	})
	return nil
}

func promptTable(prompts []generator.Prompt) [][]string {
	results := [][]string{{"Variation", "Prompt"}}
	for _, p := range prompts {
		results = append(results, []string{p.Label, p.FullPrompt})
	}
	return results
}
