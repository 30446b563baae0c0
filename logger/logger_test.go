package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func plainOptions(buf *bytes.Buffer) *Options {
	opts := DefaultOptions()
	opts.Output = buf
	opts.EnableColors = false
	return opts
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: " warn ", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConsole_TextOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := NewConsole(plainOptions(&buf))

	c.Info("Processing %d files", 3)
	c.Debug("hidden at info level")
	c.Logger.With("file", "a.nef").Warn("slow")

	out := buf.String()
	if !strings.Contains(out, "INFO  ℹ Processing 3 files") {
		t.Errorf("missing info line in %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
	if !strings.Contains(out, "WARN  slow file=a.nef") {
		t.Errorf("missing attribute in %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("colour codes written with colours disabled: %q", out)
	}
}

func TestConsole_ColoredOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Output = &buf
	c := NewConsole(opts)

	c.Error("boom")

	if !strings.Contains(buf.String(), Red) {
		t.Errorf("expected red escape in %q", buf.String())
	}
}

func TestConsole_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Output = &buf
	opts.EnableJSON = true
	opts.Level = slog.LevelDebug
	c := NewConsole(opts)

	c.Logger.WithGroup("pair").Debug("planned", "input", "a.nef")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "planned" || entry["level"] != "DEBUG" || entry["pair.input"] != "a.nef" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestStripANSI(t *testing.T) {
	t.Parallel()

	in := Red + Bold + "✖ failed" + Reset + " done"
	if got := stripANSI(in); got != "✖ failed done" {
		t.Errorf("stripANSI() = %q", got)
	}
}

func TestTable_Print(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	table := NewTable([]string{"Input", "Output"}, &buf)
	table.AddRow("a.nef", "ä.jpg")
	table.AddRow("long/path/b.nef")
	table.Print()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), buf.String())
	}

	width := len([]rune(lines[0]))
	for i, line := range lines {
		if n := len([]rune(line)); n != width {
			t.Errorf("line %d has width %d, want %d: %q", i, n, width, line)
		}
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}

func TestConsole_Box(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := NewConsole(plainOptions(&buf))
	c.Box("rawconv", "Version: dev\nGit commit: unknown")

	out := buf.String()
	if !strings.Contains(out, "Version: dev") || !strings.HasPrefix(out, "┌─rawconv") {
		t.Errorf("unexpected box:\n%s", out)
	}
}
