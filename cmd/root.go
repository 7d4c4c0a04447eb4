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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/watch-history-tools/internal/session"
	"github.com/ademuri/watch-history-tools/internal/store"
	"github.com/ademuri/watch-history-tools/internal/topics"
)

var cfgFile string
var cachePath string
var databasePath string
var extractorMode string
var mecabPath string

var errNoData = errors.New("No watch history loaded - run analyze first.")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "watch-history-tools",
	Short: "Performs analysis on YouTube watch history",
	Long: `Analyzes a Google Takeout watch-history.json export: viewing statistics,
title topics, time patterns and phases, and music prompts built from the result.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.watch-history-tools.yaml)")

	rootCmd.PersistentFlags().StringVar(
		&cachePath, "cache", defaultCachePath(), "Path to the cached copy of the last analyzed history")
	viper.BindPFlag("cache", rootCmd.PersistentFlags().Lookup("cache"))

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./watch-history.db", "Path to the SQLite archive")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentFlags().StringVar(
		&extractorMode, "extractor", "auto", "Keyword extractor: auto, simple or mecab")
	viper.BindPFlag("extractor", rootCmd.PersistentFlags().Lookup("extractor"))

	rootCmd.PersistentFlags().StringVar(&mecabPath, "mecab_path", "mecab", "MeCab binary used by the mecab extractor")
	viper.BindPFlag("mecab_path", rootCmd.PersistentFlags().Lookup("mecab_path"))
}

func defaultCachePath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ".watch-history-cache.json"
	}
	return filepath.Join(home, ".watch-history-cache.json")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".watch-history-tools" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".watch-history-tools")
	}

	viper.SetEnvPrefix("WATCH_HISTORY")
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.PersistentFlags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func newExtractor() topics.Extractor {
	return topics.NewExtractor(viper.GetString("extractor"), viper.GetString("mecab_path"))
}

// openSession returns a session backed by the configured cache and archive.
// The caller must call close when done.
func openSession() (sess *session.Session, close func(), err error) {
	db, err := store.New(viper.GetString("database"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	sess = session.New(viper.GetString("cache"),
		session.WithExtractor(newExtractor()),
		session.WithArchive(db))
	return sess, func() { db.Close() }, nil
}

// cachedSession restores the last analyzed history without touching the
// archive.
func cachedSession() (*session.Session, error) {
	sess := session.New(viper.GetString("cache"), session.WithExtractor(newExtractor()))
	if !sess.LoadCache() {
		return nil, errNoData
	}
	return sess, nil
}

func withCachedSession(fn func(sess *session.Session) error) error {
	sess, err := cachedSession()
	if err != nil {
		return err
	}
	return fn(sess)
}
