package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "none.yaml")
}

func TestRoutesCommand(t *testing.T) {
	out, _, err := execute(t, "routes")
	if err != nil {
		t.Fatalf("routes error = %v", err)
	}
	for _, want := range []string{"PATTERN", "app.HomePage", "*any", "app.NotFound", "none shadowed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("HOMEPAGE_LOG_LEVEL", "error")

	out, errOut, err := execute(t, "render", "-c", missingConfig(t), "/nope")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(errOut, "status: 404") {
		t.Errorf("stderr = %q, want 404 status", errOut)
	}
	if !strings.Contains(out, "Not Found") {
		t.Errorf("stdout missing page:\n%s", out)
	}

	out, errOut, err = execute(t, "render", "-c", missingConfig(t), "/")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(errOut, "status: 200") || !strings.Contains(out, "クリックしてみてね0") {
		t.Errorf("render / = %q / %q", errOut, out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version", "--short")
	if err != nil || strings.TrimSpace(out) != version {
		t.Errorf("version --short = %q, %v", out, err)
	}
}
