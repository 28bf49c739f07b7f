// ABOUTME: Tests for badges, status classification, and stat blocks
// ABOUTME: Validates known backend statuses map to the expected levels

package widgets

import (
	"regexp"
	"strings"
	"testing"

	"github.com/markalston/moto-admin/internal/tui/icons"
	"github.com/mattn/go-runewidth"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		status   string
		expected StatusLevel
	}{
		{"delivered", StatusOK},
		{"Approved", StatusOK},
		{" pending ", StatusWarning},
		{"processing", StatusWarning},
		{"cancelled", StatusCritical},
		{"rejected", StatusCritical},
		{"shipped", StatusInfo},
		{"", StatusNeutral},
		{"mystery", StatusNeutral},
	}

	for _, tc := range tests {
		t.Run(tc.status, func(t *testing.T) {
			if got := LevelFor(tc.status); got != tc.expected {
				t.Errorf("LevelFor(%q) = %d, want %d", tc.status, got, tc.expected)
			}
		})
	}
}

func TestBadgeContainsText(t *testing.T) {
	if out := Badge("pending", StatusWarning); !strings.Contains(out, "pending") {
		t.Errorf("badge output %q does not contain its text", out)
	}
}

func TestStatusTextContainsText(t *testing.T) {
	if out := StatusText("shipped", LevelFor("shipped")); !strings.Contains(out, "shipped") {
		t.Errorf("status text %q does not contain its text", out)
	}
}

func TestStatBlockWidth(t *testing.T) {
	cfg := DefaultStatBlockConfig()
	out := StatBlock(icons.Orders, "Orders", "1,204", "all time", cfg)

	lines := strings.Split(stripANSI(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if w := runewidth.StringWidth(l); w != cfg.Width {
			t.Errorf("line %d is %d wide, want %d: %q", i, w, cfg.Width, l)
		}
	}
	if !strings.Contains(lines[1], "1,204") {
		t.Errorf("value missing from %q", lines[1])
	}
}

var ansiSeq = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}
