package ui

import (
	"image/color"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for in, want := range cases {
		if got := NextTheme(in); got != want {
			t.Fatalf("NextTheme(%s) = %q, want %s", in, got, want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", got)
	}
}

func TestThemesCoverEveryStatus(t *testing.T) {
	statuses := []string{"idle", "submitting", "succeeded", "failed", "checking", "online", "offline"}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, status := range statuses {
			if th.StatusColors[status] == "" {
				t.Fatalf("theme %s has no color for %q", name, status)
			}
		}
	}
}

func TestBackgroundColor(t *testing.T) {
	got := color.RGBAModel.Convert(GetTheme("Slate").BackgroundColor()).(color.RGBA)
	want := color.RGBA{R: 0x02, G: 0x06, B: 0x17, A: 0xff}
	if got != want {
		t.Fatalf("BackgroundColor() = %#v, want %#v", got, want)
	}

	broken := Theme{Background: "nope"}
	if broken.BackgroundColor() != color.Black {
		t.Fatalf("BackgroundColor() for invalid hex should fall back to black")
	}
}

func TestStatusStyleUsesPhaseColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		styles := th.Styles()
		got := styles.StatusStyle(" Failed ").GetBackground()
		if got != lipgloss.Color(th.StatusColors["failed"]) {
			t.Fatalf("theme %s: StatusStyle(failed) background = %v, want %s", name, got, th.StatusColors["failed"])
		}
		if fallback := styles.StatusStyle("unknown").GetBackground(); fallback != lipgloss.Color(th.Muted) {
			t.Fatalf("theme %s: unknown status background = %v, want muted %s", name, fallback, th.Muted)
		}
	}
}
