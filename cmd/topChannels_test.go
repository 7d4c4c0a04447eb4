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
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestPrintTopChannelsDatabaseDoesntExist(t *testing.T) {
	err := printTopChannels(&bytes.Buffer{}, filepath.Join(t.TempDir(), "watch-history.db"), []string{"2020-05"}, 10)
	if err == nil {
		t.Fatalf("printTopChannels should have errored with no database")
	}
	if !strings.Contains(err.Error(), "doesn't exist") {
		t.Fatalf("printTopChannels should have said the db doesn't exist: %v", err)
	}
}

func TestPrintTopChannelsInvalidDateString(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "watch-history.db")
	err := printTopChannels(&bytes.Buffer{}, dbPath, []string{}, 10)
	if err == nil {
		t.Fatalf("printTopChannels should have errored with no date string")
	}

	err = printTopChannels(&bytes.Buffer{}, dbPath, []string{"derp"}, 10)
	if err == nil {
		t.Fatalf("printTopChannels should have errored with an invalid date string")
	}
}

func TestPrintTopChannels(t *testing.T) {
	path := setupTestEnv(t)
	if err := analyzeFile(&bytes.Buffer{}, path, 10); err != nil {
		t.Fatalf("analyzeFile: %v", err)
	}

	var out bytes.Buffer
	if err := printTopChannels(&out, viper.GetString("database"), []string{"2024-03"}, 1); err != nil {
		t.Fatalf("printTopChannels: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Lofi Girl") {
		t.Errorf("top channel missing:\n%s", got)
	}
	if strings.Contains(got, "Gamer") {
		t.Errorf("limit of 1 not applied:\n%s", got)
	}
	if !strings.Contains(got, "Found 2 channels and 3 videos from 2024-03-01 to 2024-04-01") {
		t.Errorf("summary wrong:\n%s", got)
	}
}
