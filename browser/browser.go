// Package browser owns the headless browser session used to render archive pages.
//
// The session is an explicit handle: acquired once at startup, passed down to
// the pipeline, and released on every exit path. Page readiness is detected
// by waiting for the expected content selector under a bounded timeout
// rather than sleeping for a fixed interval.
package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/spf13/viper"
	"github.com/vgmirror-cli/vgmirror/key"
	"github.com/vgmirror-cli/vgmirror/log"
)

// ErrSetup marks unrecoverable browser bootstrap failures; the run aborts
// before any traversal starts.
var ErrSetup = errors.New("browser setup")

// ErrNavigation marks a page that failed to load; the current traversal step
// is abandoned and the run continues at the next sibling.
var ErrNavigation = errors.New("navigation")

// Session wraps a controllable browser instance.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// NewSession launches and connects a browser according to global configuration.
// A missing or misconfigured browser executable yields ErrSetup.
func NewSession() (*Session, error) {
	bin := viper.GetString(key.BrowserPath)
	if bin == "" {
		// Auto-discover an installed Chromium/Chrome before rod falls back
		// to downloading its own revision.
		if path, found := launcher.LookPath(); found {
			bin = path
		}
	}

	l := launcher.New().
		Headless(viper.GetBool(key.BrowserHeadless)).
		Set("disable-gpu")
	if bin != "" {
		l = l.Bin(bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: launch: %v", ErrSetup, err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("%w: connect: %v", ErrSetup, err)
	}

	return &Session{
		browser:  b,
		launcher: l,
		timeout:  time.Duration(viper.GetInt(key.ScraperPageTimeout)) * time.Second,
	}, nil
}

// HTML navigates to url, waits for the expected content selector under the
// configured timeout, and returns the rendered page markup. A page whose
// selector never appears still returns its markup; structural mismatch is
// the parser's concern, not a navigation failure.
func (s *Session) HTML(url, waitSelector string) (string, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", ErrNavigation, url, err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			log.Debugf("close page %s: %v", url, err)
		}
	}()

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("%w: load %s: %v", ErrNavigation, url, err)
	}

	if waitSelector != "" {
		if _, err := page.Timeout(s.timeout).Element(waitSelector); err != nil {
			log.Debugf("selector %q not found on %s: %v", waitSelector, url, err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrNavigation, url, err)
	}
	return html, nil
}

// Close releases the browser instance and its launcher resources.
func (s *Session) Close() {
	if err := s.browser.Close(); err != nil {
		log.Warnf("close browser: %v", err)
	}
	s.launcher.Cleanup()
}
