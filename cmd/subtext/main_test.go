package main

import (
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()

	want := []string{"tracks", "fetch", "translate", "review", "glossary", "cache", "config"}
	registered := make(map[string]bool)
	for _, cmd := range root.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestFetchCommandFlags(t *testing.T) {
	root := newRootCommand()
	fetch, _, err := root.Find([]string{"fetch"})
	if err != nil {
		t.Fatalf("find fetch: %v", err)
	}
	for _, flag := range []string{"lang", "auto", "all", "format", "output", "no-cache"} {
		if fetch.Flags().Lookup(flag) == nil {
			t.Errorf("fetch missing --%s", flag)
		}
	}
}

func TestConfigNewSkipsConfigLoad(t *testing.T) {
	root := newRootCommand()
	cmd, _, err := root.Find([]string{"config", "new"})
	if err != nil {
		t.Fatalf("find config new: %v", err)
	}
	if !shouldSkipConfig(cmd) {
		t.Fatal("config new should skip config loading")
	}
}

func TestMaskSecret(t *testing.T) {
	if got := maskSecret(""); got != "(unset)" {
		t.Fatalf("empty secret: %q", got)
	}
	if got := maskSecret("short"); got != "********" {
		t.Fatalf("short secret: %q", got)
	}
	if got := maskSecret("sk-abcdefghijklmnop"); got != "sk-a...mnop" {
		t.Fatalf("long secret: %q", got)
	}
}
