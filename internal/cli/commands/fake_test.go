package commands

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"swiftcheck/internal/config"
	"swiftcheck/internal/driver"
)

// fakeDriver renders a canned translator page per input. Inputs without a
// page render the empty translator; failNavigate makes every navigation fail.
type fakeDriver struct {
	mu           sync.Mutex
	pages        map[string]string
	failNavigate bool
	opened       int
	closed       bool
}

func (d *fakeDriver) factory() DriverFactory {
	return func(*config.Config, *zap.Logger) driver.Driver { return d }
}

func (d *fakeDriver) Open(ctx context.Context) (driver.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opened++
	return &fakeSession{d: d}, nil
}

func (d *fakeDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

type fakeSession struct {
	d        *fakeDriver
	rendered string
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if s.d.failNavigate {
		return errors.New("net::ERR_NAME_NOT_RESOLVED")
	}
	s.rendered = "Singlish Sinhala 🔁 Clear English"
	return nil
}

func (s *fakeSession) FillInput(ctx context.Context, selector, text string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if page, ok := s.d.pages[text]; ok {
		s.rendered = page
	}
	return nil
}

func (s *fakeSession) ReadPageText(ctx context.Context) (string, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return s.rendered, nil
}

func (s *fakeSession) Close() error { return nil }
