package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunHeadlessJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-frames", "3", "-json", "-seed", "7", "-log-level", "error"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr %q", code, stderr.String())
	}

	var got struct {
		Frame   uint64 `json:"frame"`
		Planets []struct {
			Name string `json:"name"`
		} `json:"planets"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout.String())
	}
	if got.Frame != 3 || len(got.Planets) != 8 {
		t.Errorf("frame %d with %d planets, want 3 with 8", got.Frame, len(got.Planets))
	}
}

func TestRunMetricsToLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "orrery.log")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-frames", "2", "-metrics", "-log-file", logPath, "-seed", "7"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr %q", code, stderr.String())
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "orrery_frames_total") {
		t.Errorf("log file should hold the metrics dump:\n%s", data)
	}
	if strings.Contains(stderr.String(), "orrery_frames_total") {
		t.Error("metrics should not also go to stderr")
	}
}

func TestRunBadLogFileReturnsError(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "missing", "orrery.log")
	var stdout, stderr bytes.Buffer

	if code := run([]string{"-frames", "1", "-log-file", logPath}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "Error:") {
		t.Errorf("stderr = %q, want an error line", stderr.String())
	}
}

func TestRunBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-no-such-flag"}, &stdout, &stderr); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", stdout.String())
	}
}

func TestParseFlagsClampsFPS(t *testing.T) {
	tests := []struct {
		arg  string
		want int
	}{
		{"-fps=0", minFPS},
		{"-fps=500", maxFPS},
		{"-fps=30", 30},
	}
	for _, tt := range tests {
		cfg, err := parseFlags([]string{tt.arg}, io.Discard)
		if err != nil {
			t.Fatalf("parseFlags(%s): %v", tt.arg, err)
		}
		if cfg.FPS != tt.want {
			t.Errorf("parseFlags(%s).FPS = %d, want %d", tt.arg, cfg.FPS, tt.want)
		}
		if cfg.Seed == 0 {
			t.Errorf("parseFlags(%s) left the seed at zero", tt.arg)
		}
	}
}

func TestMetricsOutput(t *testing.T) {
	logOut := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	tests := []struct {
		name string
		cfg  Config
		want io.Writer
	}{
		{"TUI without log file", Config{}, stderr},
		{"TUI with log file", Config{LogFile: "orrery.log"}, logOut},
		{"headless", Config{Frames: 1}, logOut},
		{"headless with log file", Config{JSON: true, LogFile: "orrery.log"}, logOut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := metricsOutput(tt.cfg, logOut, stderr); got != tt.want {
				t.Errorf("metricsOutput went to the wrong writer")
			}
		})
	}
}
