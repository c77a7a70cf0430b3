package term

import (
	"os"
	"testing"

	"github.com/backmassage/qonvert/internal/config"
)

func TestConfigure(t *testing.T) {
	tests := []struct {
		name string
		mode config.ColorMode
		env  map[string]string
		want bool
	}{
		{"always", config.ColorAlways, nil, true},
		{"never", config.ColorNever, nil, false},
		{"always ignores NO_COLOR", config.ColorAlways, map[string]string{"NO_COLOR": "1"}, true},
		{"auto honours NO_COLOR", config.ColorAuto, map[string]string{"NO_COLOR": "1"}, false},
		{"auto honours dumb terminal", config.ColorAuto, map[string]string{"TERM": "dumb"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			Configure(tt.mode)
			defer Configure(config.ColorNever)
			if Enabled() != tt.want {
				t.Errorf("Enabled() = %v, want %v", Enabled(), tt.want)
			}
			if tt.want && Red == "" {
				t.Error("Red should be set when colors are enabled")
			}
			if !tt.want && (Red != "" || NC != "") {
				t.Error("colors should be empty when disabled")
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(nil) {
		t.Error("nil file is not a terminal")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("regular file reported as terminal")
	}
}

func TestWantColor_Auto(t *testing.T) {
	env := func(kv map[string]string) func(string) string {
		return func(k string) string { return kv[k] }
	}
	tests := []struct {
		name string
		out  *os.File
		env  map[string]string
		want bool
	}{
		{"no file", nil, nil, false},
		{"NO_COLOR wins", nil, map[string]string{"NO_COLOR": "1"}, false},
		{"dumb any case", nil, map[string]string{"TERM": "DUMB"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wantColor(config.ColorAuto, tt.out, env(tt.env)); got != tt.want {
				t.Errorf("wantColor = %v, want %v", got, tt.want)
			}
		})
	}
	if !wantColor(config.ColorAlways, nil, env(map[string]string{"NO_COLOR": "1"})) {
		t.Error("always must ignore NO_COLOR")
	}
}

func TestPaint(t *testing.T) {
	Configure(config.ColorNever)
	if got := Paint(Cyan, "libx265"); got != "libx265" {
		t.Errorf("Paint with colors off = %q", got)
	}
	Configure(config.ColorAlways)
	defer Configure(config.ColorNever)
	if got := Paint(Cyan, "libx265"); got != ansiCyan+"libx265"+ansiReset {
		t.Errorf("Paint with colors on = %q", got)
	}
}
