package main

import (
	"testing"

	"linkedinctl/cmd"
)

func TestVersionInjection(t *testing.T) {
	if version != "dev" {
		t.Errorf("expected default version to be 'dev', got %s", version)
	}

	cmd.SetVersion("1.2.3")
	if got := cmd.GetVersion(); got != "1.2.3" {
		t.Errorf("expected injected version 1.2.3, got %s", got)
	}

	cmd.SetVersion(version)
}
