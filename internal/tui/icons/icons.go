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
	if env := os.Getenv("MOTO_ADMIN_NERD_FONTS"); env != "" {
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
	// Sections
	Dashboard   = Icon{"󰕮", "▦"} // nf-md-view_dashboard
	Users       = Icon{"󰀎", "☺"} // nf-md-account_multiple
	Orders      = Icon{"󰄐", "▤"} // nf-md-cart
	Products    = Icon{"󰏗", "▣"} // nf-md-package_variant
	Brands      = Icon{"󰓹", "◆"} // nf-md-tag
	Categories  = Icon{"󰉋", "▢"} // nf-md-folder
	Models      = Icon{"󰍼", "◎"} // nf-md-motorbike
	Feedback    = Icon{"󰍡", "✉"} // nf-md-message_text
	Ambassadors = Icon{"󰓎", "★"} // nf-md-star
	Partners    = Icon{"󰖟", "◇"} // nf-md-handshake

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	Lock = Icon{"󰌾", "⚿"} // nf-md-lock

	// Application
	App = Icon{"󰍼", "◈"} // nf-md-motorbike
)
