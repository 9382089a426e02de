package tui

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"huba-cli/internal/store"
)

// Themes is the ordered set of palettes the user can cycle through:
// built-ins first, then custom files not shadowing a built-in name.
type Themes struct {
	names  []string
	byName map[string]Palette
}

// LoadThemes returns the built-in palettes merged with valid theme files
// from dir. A custom file named like a built-in replaces it in place.
func LoadThemes(dir string, logger *slog.Logger) Themes {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	byName := builtinPalettes()
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)

	custom := loadCustomThemes(dir, logger)
	customNames := make([]string, 0, len(custom))
	for n := range custom {
		customNames = append(customNames, n)
	}
	sort.Strings(customNames)
	for _, n := range customNames {
		if _, builtin := byName[n]; !builtin {
			names = append(names, n)
		}
		byName[n] = custom[n]
	}
	return Themes{names: names, byName: byName}
}

// AvailableThemes lists theme names from the built-ins and the user's
// themes directory.
func AvailableThemes() ([]string, error) {
	dir, err := store.ThemesDir()
	if err != nil {
		return nil, err
	}
	return LoadThemes(dir, nil).Names(), nil
}

func (t Themes) Names() []string {
	return append([]string(nil), t.names...)
}

// Get returns the named palette, falling back to the default theme.
func (t Themes) Get(name string) (Palette, bool) {
	if p, ok := t.byName[name]; ok {
		return p, true
	}
	if p, ok := t.byName[store.DefaultTheme]; ok {
		return p, false
	}
	return claudePalette(), false
}

// Next steps delta positions from name, wrapping around.
func (t Themes) Next(name string, delta int) string {
	if len(t.names) == 0 {
		return name
	}
	cur := 0
	for i, n := range t.names {
		if n == name {
			cur = i
			break
		}
	}
	n := len(t.names)
	return t.names[((cur+delta)%n+n)%n]
}

var themeExts = map[string]bool{".json": true, ".yaml": true, ".yml": true}

func loadCustomThemes(dir string, logger *slog.Logger) map[string]Palette {
	out := map[string]Palette{}
	if strings.TrimSpace(dir) == "" {
		return out
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return out
	}
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || !themeExts[ext] {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		p, err := readThemeFile(filepath.Join(dir, e.Name()))
		if err != nil {
			logger.Warn("skipping theme file", "file", e.Name(), "err", err)
			continue
		}
		out[name] = p
	}
	return out
}

// readThemeFile decodes a JSON or YAML palette; JSON is read as YAML.
func readThemeFile(path string) (Palette, error) {
	var p Palette
	b, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("decode: %w", err)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
// Only NO_COLOR disables colors; CLICOLOR is ignored here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector found.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyBackgroundPreference tells Lip Gloss whether the terminal is dark.
//
// Priority:
// 1) HUBA_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
// 3) macOS appearance
func applyBackgroundPreference() {
	if dark, ok := darkBackgroundFromEnv(); ok {
		lipgloss.SetHasDarkBackground(dark)
		return
	}
	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			lipgloss.SetHasDarkBackground(dark)
		}
	}
}

func darkBackgroundFromEnv() (dark bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("HUBA_TUI_THEME"))) {
	case "light":
		return false, true
	case "dark":
		return true, true
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			// xterm palette: 0-6 dark, 7-15 light.
			return bg < 7, true
		}
	}
	return false, false
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// Prints "Dark" in dark mode; exits 1 in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}
