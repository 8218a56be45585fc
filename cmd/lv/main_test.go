package main

import (
	"testing"

	"github.com/vanderheijden86/listfold/pkg/config"
	"github.com/vanderheijden86/listfold/pkg/loader"
)

func TestResolveDataPathPrecedence(t *testing.T) {
	cfg := config.Config{DataPath: "/cfg/items.jsonl"}

	got, err := resolveDataPath("/flag/items.jsonl", "/arg/items.jsonl", cfg)
	if err != nil || got != "/flag/items.jsonl" {
		t.Errorf("flag should win: got %q, err %v", got, err)
	}

	got, err = resolveDataPath("", "/arg/items.jsonl", cfg)
	if err != nil || got != "/arg/items.jsonl" {
		t.Errorf("arg should beat config: got %q, err %v", got, err)
	}

	got, err = resolveDataPath("", "", cfg)
	if err != nil || got != "/cfg/items.jsonl" {
		t.Errorf("config should beat env/cwd: got %q, err %v", got, err)
	}
}

func TestResolveDataPathFallsBackToEnv(t *testing.T) {
	t.Setenv(loader.DirEnvVar, "/env/exports")

	got, err := resolveDataPath("", "", config.Config{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "/env/exports" {
		t.Errorf("expected LISTFOLD_DIR fallback, got %q", got)
	}
}
