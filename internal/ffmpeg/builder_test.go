package ffmpeg

import (
	"slices"
	"strings"
	"testing"

	"github.com/backmassage/qonvert/internal/planner"
)

func testPlan(codec string) *planner.FilePlan {
	pol := planner.DefaultPolicy()
	pol.Override = codec
	return planner.BuildPlan(pol, "/in/clip.mov", "/out/clip.mp4", false)
}

func TestBuild_ProgressOnStdout(t *testing.T) {
	args := Build(testPlan(""))
	i := slices.Index(args, "-progress")
	if i < 0 || i+1 >= len(args) || args[i+1] != "pipe:1" {
		t.Fatalf("args %v missing -progress pipe:1", args)
	}
	if !slices.Contains(args, "-nostdin") {
		t.Error("args missing -nostdin")
	}
}

func TestBuild_Order(t *testing.T) {
	args := Build(testPlan("libx265"))

	in := slices.Index(args, "-i")
	cv := slices.Index(args, "-c:v")
	tag := slices.Index(args, "-tag:v")
	if in < 0 || cv < 0 || tag < 0 {
		t.Fatalf("missing args: %v", args)
	}
	if !(in < cv && cv < tag) {
		t.Errorf("want -i < -c:v < -tag:v, got %d %d %d", in, cv, tag)
	}
	if args[in+1] != "/in/clip.mov" {
		t.Errorf("input = %q", args[in+1])
	}
	if args[len(args)-1] != "/out/clip.mp4" {
		t.Errorf("output must be last, got %q", args[len(args)-1])
	}
}

func TestBuild_DefaultCodecOmitsCV(t *testing.T) {
	plan := planner.BuildPlan(planner.DefaultPolicy(), "/in/a.mov", "/out/a.webm", false)
	if slices.Contains(Build(plan), "-c:v") {
		t.Error("-c:v present without a codec")
	}
}

func TestBuild_LogLevel(t *testing.T) {
	plan := testPlan("")
	if got := argAfter(Build(plan), "-loglevel"); got != "error" {
		t.Errorf("loglevel = %q, want error", got)
	}
	plan.Verbose = true
	if got := argAfter(Build(plan), "-loglevel"); got != "info" {
		t.Errorf("verbose loglevel = %q, want info", got)
	}
}

func TestFormatCommand(t *testing.T) {
	got := FormatCommand("ffmpeg", []string{"-i", "/in/my clip.mov", "-vf", "crop=trunc(iw/2)*2:trunc(ih/2)*2", "out.mp4"})
	if !strings.HasPrefix(got, "ffmpeg -i \"/in/my clip.mov\"") {
		t.Errorf("FormatCommand = %s", got)
	}
	if !strings.HasSuffix(got, " out.mp4") {
		t.Errorf("FormatCommand = %s", got)
	}
}

func argAfter(args []string, flag string) string {
	i := slices.Index(args, flag)
	if i < 0 || i+1 >= len(args) {
		return ""
	}
	return args[i+1]
}
