package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRun_BootstrapErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tests := []struct {
		name string
		args []string
	}{
		{"no inputs", []string{"-t", "mp4"}},
		{"no output type", []string{"clip.mov"}},
		{"unknown flag", []string{"--frobnicate", "-t", "mp4", "clip.mov"}},
		{"negative limit", []string{"-t", "mp4", "-l", "-2", "clip.mov"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := run(context.Background(), tt.args); code != 1 {
				t.Errorf("run(%v) = %d, want 1", tt.args, code)
			}
		})
	}
}

func TestRun_ResolutionErrorsExitOne(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	clip := filepath.Join(dir, "clip.mov")
	if err := os.WriteFile(clip, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"-t", "mp4", "--no-color", filepath.Join(dir, "missing.mov")}},
		{"missing output dir", []string{"-t", "mp4", "--no-color", "-o", filepath.Join(dir, "nope"), clip}},
		{"mixed inputs", []string{"-t", "mp4", "--no-color", clip, dir}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := run(context.Background(), tt.args); code != 1 {
				t.Errorf("run(%v) = %d, want 1", tt.args, code)
			}
		})
	}
}

func TestRun_DryRun(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	in := t.TempDir()
	out := t.TempDir()
	for _, name := range []string{"a.mov", "b.gif"} {
		if err := os.WriteFile(filepath.Join(in, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	code := run(context.Background(), []string{"-t", "mp4", "-o", out, "-d", "--no-color", in})
	if code != 0 {
		t.Fatalf("dry run exit = %d, want 0", code)
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Errorf("dry run wrote %d files", len(entries))
	}
}

func TestRun_Version(t *testing.T) {
	if code := run(context.Background(), []string{"--version"}); code != 0 {
		t.Errorf("--version exit = %d", code)
	}
}
