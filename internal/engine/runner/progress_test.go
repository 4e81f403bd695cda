package runner

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verigate/verigate/internal/engine/report"
)

func TestProgress_Suppressed(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, true, 3)

	p.OnStart("lint")
	p.OnComplete(&report.CheckResult{Name: "lint", Status: report.StatusPassed, DurationMs: 800})
	p.Finish()

	if buf.Len() != 0 {
		t.Errorf("expected no output in suppressed mode, got: %q", buf.String())
	}
}

func TestProgress_Header(t *testing.T) {
	var buf bytes.Buffer
	_ = NewProgress(&buf, false, 3)

	if !strings.Contains(buf.String(), "3 check(s)") {
		t.Errorf("expected header with check count, got %q", buf.String())
	}
}

func TestProgress_PassedCheck(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, false, 1)

	p.OnStart("lint")
	p.OnComplete(&report.CheckResult{Name: "lint", Status: report.StatusPassed, DurationMs: 800})
	p.Finish()

	output := buf.String()
	if !strings.Contains(output, "✅ lint") {
		t.Errorf("expected pass icon for lint, got %q", output)
	}
	if !strings.Contains(output, "All 1 check(s) passed") {
		t.Errorf("expected all-passed summary, got %q", output)
	}
}

func TestProgress_FailedCheck(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, false, 1)

	p.OnStart("security")
	p.OnComplete(&report.CheckResult{Name: "security", Status: report.StatusFailed, Severity: "error", DurationMs: 500})
	p.Finish()

	output := buf.String()
	if !strings.Contains(output, "❌ security") {
		t.Errorf("expected fail icon, got %q", output)
	}
	if !strings.Contains(output, "1 failed") {
		t.Errorf("expected failure count in summary, got %q", output)
	}
}

func TestProgress_SkippedCheck(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, false, 2)

	p.OnComplete(&report.CheckResult{Name: "build", Status: report.StatusFailed, Severity: "error", DurationMs: 120})
	p.OnComplete(&report.CheckResult{Name: "tests", Status: report.StatusSkipped, SkipReason: "skipped: needs build, which failed"})
	p.Finish()

	output := buf.String()
	if !strings.Contains(output, "1 skipped") {
		t.Errorf("expected skipped count in summary, got %q", output)
	}
}

func TestProgress_SystemError(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, false, 1)

	p.OnStart("lint")
	p.OnComplete(&report.CheckResult{Name: "lint", Status: report.StatusFailed, SystemError: "container crashed", DurationMs: 500})
	p.Finish()

	output := buf.String()
	if !strings.Contains(output, "💥 lint") {
		t.Errorf("expected crash icon, got %q", output)
	}
	if !strings.Contains(output, "1 errors") {
		t.Errorf("expected error count in summary, got %q", output)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{250, "250ms"},
		{999, "999ms"},
		{1500, "1.5s"},
	}

	for _, tt := range tests {
		got := formatDuration(time.Duration(tt.ms) * time.Millisecond)
		if got != tt.want {
			t.Errorf("formatDuration(%dms) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}
