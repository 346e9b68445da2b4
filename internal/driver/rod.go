package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// bodyTextJS reads textContent rather than innerText: the translation sits
// directly after its label with no layout-dependent line breaks added.
const bodyTextJS = `() => document.body ? document.body.textContent : ""`

// RodConfig holds browser configuration
type RodConfig struct {
	DebuggerURL       string   // Connect to an existing Chrome instead of launching one
	Bin               string   // Browser binary; empty lets rod download or find one
	Launch            []string // Extra launch flags, e.g. "--no-sandbox" or "lang=si"
	Headless          bool
	NavigationTimeout time.Duration
}

// RodDriver owns one Chrome instance and hands out incognito sessions
type RodDriver struct {
	cfg    RodConfig
	logger *zap.Logger

	mu      sync.Mutex
	browser *rod.Browser
}

// NewRodDriver creates a driver; the browser starts lazily on first Open
func NewRodDriver(cfg RodConfig, logger *zap.Logger) *RodDriver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = 30 * time.Second
	}
	return &RodDriver{cfg: cfg, logger: logger}
}

// Start connects to an existing Chrome or launches a new one
func (d *RodDriver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.startLocked(ctx)
}

func (d *RodDriver) startLocked(ctx context.Context) error {
	if d.browser != nil {
		if _, err := d.browser.Version(); err == nil {
			return nil
		}
		d.logger.Warn("stale browser connection detected, reconnecting")
		_ = d.browser.Close()
		d.browser = nil
	}

	controlURL := d.cfg.DebuggerURL
	if controlURL == "" {
		l := launcher.New().Headless(d.cfg.Headless)
		if d.cfg.Bin != "" {
			l = l.Bin(d.cfg.Bin)
		}
		for _, raw := range d.cfg.Launch {
			name, val, hasVal := strings.Cut(strings.TrimLeft(raw, "-"), "=")
			if hasVal {
				l = l.Set(flags.Flag(name), val)
			} else {
				l = l.Set(flags.Flag(name))
			}
		}
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = u
	}

	// The browser outlives any single case context.
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to chrome: %w", err)
	}
	d.browser = browser
	d.logger.Debug("browser connected", zap.String("control_url", controlURL))
	return nil
}

// Open creates a fresh incognito context with one blank page. Cookies,
// storage and in-page state are never shared between sessions.
func (d *RodDriver) Open(ctx context.Context) (Session, error) {
	d.mu.Lock()
	if err := d.startLocked(ctx); err != nil {
		d.mu.Unlock()
		return nil, Wrap(OpOpen, err)
	}
	browser := d.browser
	d.mu.Unlock()

	incognito, err := browser.Incognito()
	if err != nil {
		return nil, Wrap(OpOpen, fmt.Errorf("incognito context: %w", err))
	}
	page, err := incognito.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		_ = incognito.Close()
		return nil, Wrap(OpOpen, fmt.Errorf("create page: %w", err))
	}

	return &rodSession{
		context: incognito,
		page:    page,
		navTO:   d.cfg.NavigationTimeout,
	}, nil
}

// Close shuts the browser down
func (d *RodDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.browser == nil {
		return nil
	}
	err := d.browser.Close()
	d.browser = nil
	return err
}

type rodSession struct {
	context *rod.Browser
	page    *rod.Page
	navTO   time.Duration
}

// Navigate loads url and waits for the load event
func (s *rodSession) Navigate(ctx context.Context, url string) error {
	p := s.page.Context(ctx).Timeout(s.navTO)
	defer p.CancelTimeout()
	if err := p.Navigate(url); err != nil {
		return Wrap(OpNavigate, err)
	}
	if err := p.WaitLoad(); err != nil {
		return Wrap(OpNavigate, fmt.Errorf("wait load: %w", err))
	}
	return nil
}

// FillInput replaces the control's content with text, verbatim
func (s *rodSession) FillInput(ctx context.Context, selector, text string) error {
	el, err := s.page.Context(ctx).Timeout(s.navTO).Element(selector)
	if err != nil {
		return Wrap(OpFill, fmt.Errorf("element %q not found: %w", selector, err))
	}
	el = el.CancelTimeout()
	if err := el.SelectAllText(); err != nil {
		return Wrap(OpFill, fmt.Errorf("select existing text: %w", err))
	}
	if err := el.Input(text); err != nil {
		return Wrap(OpFill, err)
	}
	return nil
}

// ReadPageText returns the full text content of the page body
func (s *rodSession) ReadPageText(ctx context.Context) (string, error) {
	res, err := s.page.Context(ctx).Eval(bodyTextJS)
	if err != nil {
		return "", Wrap(OpRead, err)
	}
	if res == nil {
		return "", Wrap(OpRead, errors.New("empty evaluation result"))
	}
	return res.Value.Str(), nil
}

// Close disposes the incognito context together with its page
func (s *rodSession) Close() error {
	_ = s.page.Close()
	return s.context.Close()
}
