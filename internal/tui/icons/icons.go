// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("PAWS_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Catalog
	Animal   = Icon{"󰩃", "◆"} // nf-md-paw
	Species  = Icon{"󰄛", "●"} // nf-md-cat
	Breed    = Icon{"󰠳", "○"} // nf-md-dog_side
	Shelter  = Icon{"󰋜", "⌂"} // nf-md-home
	Donation = Icon{"󰊠", "♥"} // nf-md-gift
	Photo    = Icon{"󰋩", "▣"} // nf-md-image
	Medical  = Icon{"󰋠", "+"} // nf-md-hospital_box

	// People
	User       = Icon{"󰀄", "☺"} // nf-md-account
	Admin      = Icon{"󰒃", "⛊"} // nf-md-shield_check
	SuperAdmin = Icon{"󰆥", "♛"} // nf-md-crown

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Actions
	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Wizard  = Icon{"󰐕", "★"} // nf-md-plus
	Search  = Icon{"󰍉", "⌕"} // nf-md-magnify
	Login   = Icon{"󰍂", "→"} // nf-md-login
	Logout  = Icon{"󰍃", "←"} // nf-md-logout
	Back    = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app

	// Application
	App      = Icon{"󰩃", "◈"} // nf-md-paw
	Settings = Icon{"󰒓", "⚙"} // nf-md-cog
)
