package tui

import (
	"strings"
	"testing"
)

func TestMarkdownStyle_FollowsBackgroundPreference(t *testing.T) {
	t.Setenv("HUBA_TUI_MD_STYLE", "")
	t.Setenv("COLORFGBG", "")

	t.Setenv("HUBA_TUI_THEME", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}

	t.Setenv("HUBA_TUI_THEME", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}

	t.Setenv("HUBA_TUI_THEME", "auto")
	t.Setenv("COLORFGBG", "0;15")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected COLORFGBG light; got %q", got)
	}
}

func TestMarkdownStyle_MDStyleOverridesTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("HUBA_TUI_THEME", "light")

	t.Setenv("HUBA_TUI_MD_STYLE", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyleConfig_UsesPaletteColors(t *testing.T) {
	p := githubPalette()
	cfg := markdownStyleConfig("dark", &p)

	if got := strPtrValue(cfg.H2.Color); got != p.Markdown.Heading {
		t.Fatalf("heading color: %q", got)
	}
	if got := strPtrValue(cfg.Code.Color); got != p.Markdown.Code {
		t.Fatalf("code color: %q", got)
	}
	if got := strPtrValue(cfg.Item.Color); got != p.Markdown.List {
		t.Fatalf("list color: %q", got)
	}
	if got := strPtrValue(cfg.Text.Color); got != p.Markdown.Default {
		t.Fatalf("text color: %q", got)
	}
	if cfg.Document.Margin == nil || *cfg.Document.Margin != 0 {
		t.Fatalf("expected zero document margin")
	}
}

func TestRenderMarkdown_TrimsAndWraps(t *testing.T) {
	t.Setenv("HUBA_TUI_MD_STYLE", "dark")
	p := claudePalette()

	if got := renderMarkdown("   \n", 40, "claude", &p); got != "" {
		t.Fatalf("expected empty output for blank input; got %q", got)
	}

	out := renderMarkdown("# Plan\n\nShip the parser before the release.", 40, "claude", &p)
	plain := stripANSIEscapes(out)
	if !strings.Contains(plain, "Plan") || !strings.Contains(plain, "Ship the parser") {
		t.Fatalf("unexpected render:\n%s", plain)
	}
	lines := strings.Split(plain, "\n")
	if strings.TrimSpace(lines[0]) == "" || strings.TrimSpace(lines[len(lines)-1]) == "" {
		t.Fatalf("expected blank edges trimmed:\n%q", plain)
	}
}

func strPtrValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
