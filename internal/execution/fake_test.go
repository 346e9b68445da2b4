package execution

import (
	"context"
	"errors"
	"sync"

	"swiftcheck/internal/driver"
)

// fakeDriver renders a canned page for every input it knows. Inputs listed
// in failFill make FillInput fail; a failing navigation is set with
// failNavigate.
type fakeDriver struct {
	mu           sync.Mutex
	pages        map[string]string
	failFill     map[string]bool
	failNavigate bool
	opened       int
	closed       int
	navigations  int
	maxOpen      int
	open         int
}

func newFakeDriver(pages map[string]string) *fakeDriver {
	return &fakeDriver{pages: pages, failFill: map[string]bool{}}
}

func (d *fakeDriver) Open(ctx context.Context) (driver.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opened++
	d.open++
	if d.open > d.maxOpen {
		d.maxOpen = d.open
	}
	return &fakeSession{d: d}, nil
}

func (d *fakeDriver) Close() error { return nil }

func (d *fakeDriver) stats() (opened, closed, navigations, maxOpen int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opened, d.closed, d.navigations, d.maxOpen
}

type fakeSession struct {
	d        *fakeDriver
	rendered string
	loaded   bool
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if s.d.failNavigate {
		return errors.New("net::ERR_CONNECTION_REFUSED")
	}
	s.d.navigations++
	s.loaded = true
	s.rendered = "Singlish to Sinhala Translator Clear"
	return nil
}

func (s *fakeSession) FillInput(ctx context.Context, selector, text string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if !s.loaded {
		return errors.New("page not loaded")
	}
	if s.d.failFill[text] {
		return errors.New("element not found")
	}
	if page, ok := s.d.pages[text]; ok {
		s.rendered = page
	}
	return nil
}

func (s *fakeSession) ReadPageText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return s.rendered, nil
}

func (s *fakeSession) Close() error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.closed++
	s.d.open--
	return nil
}
