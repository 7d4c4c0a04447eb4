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
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ademuri/watch-history-tools/internal/server"
)

var version = "dev"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the analysis tools over MCP on stdio",
	Long: `Runs a Model Context Protocol server on stdin/stdout. Every analysis is exposed as a tool;
analyze_watch_history or load_cached_data must be called before the others.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := serve()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	// stdout carries the protocol.
	log.SetOutput(os.Stderr)

	sess, close, err := openSession()
	if err != nil {
		return err
	}
	defer close()

	return server.New(sess, version).ServeStdio()
}
