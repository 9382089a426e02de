package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"huba-cli/internal/task"
)

const (
	LayoutHorizontal = "horizontal"
	LayoutVertical   = "vertical"

	DefaultTheme = "claude"
)

// Settings are the user's persisted TUI preferences.
type Settings struct {
	Sort         task.Sort   `json:"sort"`
	Filter       task.Filter `json:"filter"`
	Theme        string      `json:"theme"`
	Layout       string      `json:"layout"`
	ShowDetails  bool        `json:"showDetails"`
	ShowProgress bool        `json:"showProgress"`
	LastList     string      `json:"lastList,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		Sort:         task.Sort{Field: task.SortFieldID},
		Filter:       task.Filter{Status: task.FilterAll},
		Theme:        DefaultTheme,
		Layout:       LayoutHorizontal,
		ShowDetails:  true,
		ShowProgress: true,
	}
}

// Setting keys as stored in the settings table.
const (
	KeySortField     = "sortField"
	KeySortDirection = "sortDirection"
	KeyFilterStatus  = "filterStatus"
	KeySearch        = "search"
	KeyTheme         = "theme"
	KeyLayout        = "layout"
	KeyShowDetails   = "showDetails"
	KeyShowProgress  = "showProgress"
	KeyLastList      = "lastList"
)

// SettingKeys lists every known key in a stable order.
func SettingKeys() []string {
	keys := []string{
		KeySortField, KeySortDirection, KeyFilterStatus, KeySearch,
		KeyTheme, KeyLayout, KeyShowDetails, KeyShowProgress, KeyLastList,
	}
	sort.Strings(keys)
	return keys
}

// Values flattens s into its stored key/value form.
func (s Settings) Values() map[string]string {
	dir := "asc"
	if s.Sort.Desc {
		dir = "desc"
	}
	return map[string]string{
		KeySortField:     string(s.Sort.Field),
		KeySortDirection: dir,
		KeyFilterStatus:  s.Filter.Status,
		KeySearch:        s.Filter.Search,
		KeyTheme:         s.Theme,
		KeyLayout:        s.Layout,
		KeyShowDetails:   strconv.FormatBool(s.ShowDetails),
		KeyShowProgress:  strconv.FormatBool(s.ShowProgress),
		KeyLastList:      s.LastList,
	}
}

// Apply validates value and stores it under key.
func (s *Settings) Apply(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case KeySortField:
		f, err := task.ParseSortField(value)
		if err != nil {
			return err
		}
		s.Sort.Field = f
	case KeySortDirection:
		switch strings.ToLower(value) {
		case "asc":
			s.Sort.Desc = false
		case "desc":
			s.Sort.Desc = true
		default:
			return fmt.Errorf("invalid sort direction: %q (expected asc|desc)", value)
		}
	case KeyFilterStatus:
		st, err := task.ParseFilterStatus(value)
		if err != nil {
			return err
		}
		s.Filter.Status = st
	case KeySearch:
		s.Filter.Search = value
	case KeyTheme:
		if value == "" {
			return fmt.Errorf("theme name is required")
		}
		s.Theme = value
	case KeyLayout:
		switch value {
		case LayoutHorizontal, LayoutVertical:
			s.Layout = value
		default:
			return fmt.Errorf("invalid layout: %q (expected horizontal|vertical)", value)
		}
	case KeyShowDetails, KeyShowProgress:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %q (expected true|false)", key, value)
		}
		if key == KeyShowDetails {
			s.ShowDetails = b
		} else {
			s.ShowProgress = b
		}
	case KeyLastList:
		s.LastList = value
	default:
		return fmt.Errorf("unknown setting: %q", key)
	}
	return nil
}
