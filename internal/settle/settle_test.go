package settle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// scriptedReader returns the scripted texts in order and repeats the last one
type scriptedReader struct {
	mu    sync.Mutex
	texts []string
	reads int
	err   error
}

func (r *scriptedReader) ReadPageText(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	i := r.reads
	if i >= len(r.texts) {
		i = len(r.texts) - 1
	}
	r.reads++
	return r.texts[i], nil
}

func (r *scriptedReader) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}

// counterReader never returns the same text twice
type counterReader struct {
	n int
}

func (r *counterReader) ReadPageText(ctx context.Context) (string, error) {
	r.n++
	return fmt.Sprintf("render %d", r.n), nil
}

func TestFixed_WaitsThenReadsOnce(t *testing.T) {
	r := &scriptedReader{texts: []string{"Sinhala මම🔁"}}
	f := &Fixed{Delay: 30 * time.Millisecond}

	start := time.Now()
	text, err := f.Settle(context.Background(), r)
	require.NoError(t, err)
	require.Equal(t, "Sinhala මම🔁", text)
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	require.Equal(t, 1, r.count())
}

func TestFixed_Cancelled(t *testing.T) {
	r := &scriptedReader{texts: []string{"x"}}
	f := &Fixed{Delay: time.Hour}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Settle(ctx, r)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, 0, r.count())
}

func TestPolling_StopsOnTwoIdenticalReads(t *testing.T) {
	r := &scriptedReader{texts: []string{"a", "b", "c", "c", "d"}}
	p := &Polling{Interval: 2 * time.Millisecond, Timeout: time.Second}

	text, err := p.Settle(context.Background(), r)
	require.NoError(t, err)
	require.Equal(t, "c", text)
	require.Equal(t, 4, r.count())
}

func TestPolling_WaitsForReadyText(t *testing.T) {
	r := &scriptedReader{texts: []string{"", "", "", "Sinhala මම🔁", "Sinhala මම🔁"}}
	p := &Polling{
		Interval: 2 * time.Millisecond,
		Timeout:  time.Second,
		Ready:    func(s string) bool { return s != "" },
	}

	text, err := p.Settle(context.Background(), r)
	require.NoError(t, err)
	require.Equal(t, "Sinhala මම🔁", text)
	require.Equal(t, 5, r.count())
}

func TestPolling_TimeoutReturnsLastText(t *testing.T) {
	r := &counterReader{}
	p := &Polling{Interval: 2 * time.Millisecond, Timeout: 40 * time.Millisecond}

	start := time.Now()
	text, err := p.Settle(context.Background(), r)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("render %d", r.n), text)
	require.Less(t, time.Since(start), time.Second)
}

func TestPolling_ReaderError(t *testing.T) {
	boom := errors.New("target closed")
	r := &scriptedReader{texts: []string{"x"}, err: boom}
	p := &Polling{Interval: time.Millisecond, Timeout: time.Second}

	_, err := p.Settle(context.Background(), r)
	require.ErrorIs(t, err, boom)
}

func TestNew(t *testing.T) {
	s, err := New(NameFixed, Options{Delay: 6 * time.Second})
	require.NoError(t, err)
	require.Equal(t, NameFixed, s.Name())
	require.Equal(t, 6*time.Second, s.(*Fixed).Delay)

	s, err = New(NamePolling, Options{Interval: time.Second, Timeout: 10 * time.Second})
	require.NoError(t, err)
	require.Equal(t, NamePolling, s.Name())

	_, err = New(NamePolling, Options{Timeout: time.Second})
	require.Error(t, err)

	_, err = New(NamePolling, Options{Interval: time.Second})
	require.Error(t, err)

	_, err = New("event", Options{})
	require.Error(t, err)
}
