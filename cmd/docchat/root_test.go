package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveConfigPrecedence(t *testing.T) {
	t.Setenv("DOCCHAT_BASE_URL", "http://env:5000")
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "docchat.yaml")
	if err := os.WriteFile(path, []byte("base_url: http://yaml:5000\nlog_level: debug\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--config", path, "--base-url", "http://flag:5000"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	opts := &rootOptions{}
	opts.configFile, _ = cmd.Flags().GetString("config")
	opts.baseURL, _ = cmd.Flags().GetString("base-url")

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}
	if cfg.BaseURL != "http://flag:5000" {
		t.Fatalf("expected flag to win, got %q", cfg.BaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected yaml over env, got %q", cfg.LogLevel)
	}
}

func TestRootCmdRejectsExtraArgs(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Args(cmd, []string{"a.pdf", "b.pdf"}); err == nil {
		t.Fatalf("expected error for two documents")
	}
}
