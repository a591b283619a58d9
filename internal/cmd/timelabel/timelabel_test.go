package timelabel

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html><html><head><title>files</title></head><body>
<table><tr><td>report.pdf</td><td><time datetime="2023-06-15T12:00:00Z">2023-06-15T12:00:00Z</time></td></tr>
<tr><td>notes.txt</td><td><time datetime="bogus">bogus</time></td></tr></table>
<p>2023-06-15T12:00:00Z</p>
</body></html>`

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("timelabel", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Locale != "en-US" {
		t.Fatalf("Locale = %q, want %q", cfg.Locale, "en-US")
	}
	if cfg.Timezone != "Local" {
		t.Fatalf("Timezone = %q, want %q", cfg.Timezone, "Local")
	}
	if cfg.Input != "-" || cfg.Output != "-" {
		t.Fatalf("Input/Output = %q/%q, want -/-", cfg.Input, cfg.Output)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("TIMELABEL_LOCALE", "pt-BR")
	t.Setenv("TIMELABEL_TIMEZONE", "America/Sao_Paulo")

	fs := flag.NewFlagSet("timelabel", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-timezone", "UTC", "-in", "page.html"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Locale != "pt-BR" {
		t.Fatalf("Locale = %q, want %q", cfg.Locale, "pt-BR")
	}
	if cfg.Timezone != "UTC" {
		t.Fatalf("Timezone = %q, want %q", cfg.Timezone, "UTC")
	}
	if cfg.Input != "page.html" {
		t.Fatalf("Input = %q, want %q", cfg.Input, "page.html")
	}
}

func TestRunLocalizesStdinToStdout(t *testing.T) {
	t.Setenv("TIMELABEL_OTEL_ENDPOINT", "")

	var out bytes.Buffer
	cfg := Config{Locale: "en-US", Timezone: "UTC", Input: "-", Output: "-"}
	if err := Run(context.Background(), cfg, strings.NewReader(samplePage), &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	body := out.String()
	if !strings.Contains(body, `<time datetime="2023-06-15T12:00:00Z">6/15/2023, 12:00:00 PM</time>`) {
		t.Fatalf("expected localized time, got %s", body)
	}
	if !strings.Contains(body, `<time datetime="bogus">Invalid Date</time>`) {
		t.Fatalf("expected invalid sentinel, got %s", body)
	}
	if !strings.Contains(body, `<p>2023-06-15T12:00:00Z</p>`) {
		t.Fatalf("expected non-time element untouched, got %s", body)
	}
}

func TestRunReadsAndWritesFiles(t *testing.T) {
	t.Setenv("TIMELABEL_OTEL_ENDPOINT", "")

	dir := t.TempDir()
	in := filepath.Join(dir, "in.html")
	out := filepath.Join(dir, "out.html")
	if err := os.WriteFile(in, []byte(samplePage), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	cfg := Config{Locale: "pt-BR", Timezone: "America/Sao_Paulo", Input: in, Output: out}
	if err := Run(context.Background(), cfg, nil, nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), ">15/06/2023, 09:00:00</time>") {
		t.Fatalf("expected pt-BR rendering in Sao Paulo time, got %s", data)
	}
}

func TestRunRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("TIMELABEL_OTEL_ENDPOINT", "")

	cfg := Config{Locale: "en-US", Timezone: "Nowhere/Special", Input: "-", Output: "-"}
	err := Run(context.Background(), cfg, strings.NewReader(samplePage), &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected timezone error")
	}
	if !strings.Contains(err.Error(), "load timezone") {
		t.Fatalf("expected load timezone error, got %v", err)
	}
}

func TestRunRejectsMissingInput(t *testing.T) {
	t.Setenv("TIMELABEL_OTEL_ENDPOINT", "")

	cfg := Config{Locale: "en-US", Timezone: "UTC", Input: filepath.Join(t.TempDir(), "missing.html"), Output: "-"}
	if err := Run(context.Background(), cfg, nil, &bytes.Buffer{}); err == nil {
		t.Fatal("expected open input error")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	t.Setenv("TIMELABEL_OTEL_ENDPOINT", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	cfg := Config{Locale: "en-US", Timezone: "UTC", Input: "-", Output: "-"}
	if err := Run(ctx, cfg, strings.NewReader(samplePage), &out); err == nil {
		t.Fatal("expected context error")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}
