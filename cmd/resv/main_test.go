// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"testing"

	"github.com/spf13/viper"
)

func TestRootCommandWiring(t *testing.T) {
	cmd := newRootCmd()
	want := []string{
		"login", "logout", "whoami", "equipment", "reservations",
		"reservation", "export", "announcements", "db-tables",
	}
	have := map[string]bool{}
	for _, c := range cmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
	if cmd.Use != "resv" {
		t.Errorf("root use = %q", cmd.Use)
	}
}

func TestConfigDefaults(t *testing.T) {
	tests := []struct {
		key  string
		want any
	}{
		{"api.host", "localhost"},
		{"api.port", 8000},
		{"api.timeout", "30s"},
		{"store.type", "sqlite"},
		{"language", "zh-CN"},
	}
	for _, tt := range tests {
		if got := viper.Get(tt.key); got != tt.want {
			t.Errorf("default %s = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestExportExtension(t *testing.T) {
	if got := extFor("csv"); got != "csv" {
		t.Errorf("extFor(csv) = %q", got)
	}
	if got := extFor("excel"); got != "xlsx" {
		t.Errorf("extFor(excel) = %q", got)
	}
	if got := extFor(""); got != "xlsx" {
		t.Errorf("extFor(empty) = %q", got)
	}
}
