// Package sync keeps the open views current by periodically asking the UI
// to reload. Maintenance status is derived from the date on every read, so
// a reload after midnight is enough to move tasks into overdue.
package sync

import (
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval is used when the configured interval is not positive.
const DefaultInterval = 2 * time.Minute

// TickMsg is a tea.Msg sent each time the poller fires.
type TickMsg struct {
	At time.Time

	// DayChanged is set when the local date differs from the previous tick.
	DayChanged bool

	// Manual is set when the tick came from Trigger rather than the timer.
	Manual bool
}

// Poller emits TickMsg values on a fixed interval until stopped.
type Poller struct {
	interval  time.Duration
	now       func() time.Time
	tickCh    chan TickMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu      gosync.Mutex
	running bool
	lastDay string
}

// New creates a Poller. A nil now uses time.Now.
func New(interval time.Duration, now func() time.Time) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if now == nil {
		now = time.Now
	}
	return &Poller{
		interval:  interval,
		now:       now,
		tickCh:    make(chan TickMsg, 1),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		lastDay:   dayKey(now()),
	}
}

// Interval returns the effective poll interval.
func (p *Poller) Interval() time.Duration { return p.interval }

// Start launches the polling goroutine and returns a command that waits
// for the first tick. Calling Start twice returns nil the second time.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()
	return p.Wait()
}

// Stop halts the polling goroutine. Pending Wait commands return nil.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	close(p.stopCh)
	p.running = false
}

// Trigger requests an immediate tick without blocking.
func (p *Poller) Trigger() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

// Wait returns a command that blocks until the next tick. The UI calls it
// again after handling each TickMsg to keep listening.
func (p *Poller) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-p.tickCh:
			return msg
		case <-p.stopCh:
			return nil
		}
	}
}

func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.emit(false)
		case <-p.triggerCh:
			p.emit(true)
		}
	}
}

func (p *Poller) emit(manual bool) {
	at := p.now()
	day := dayKey(at)

	p.mu.Lock()
	changed := day != p.lastDay
	p.lastDay = day
	p.mu.Unlock()

	msg := TickMsg{At: at, DayChanged: changed, Manual: manual}
	select {
	case p.tickCh <- msg:
	default:
		// The UI has not consumed the previous tick; one pending reload is enough.
	}
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
