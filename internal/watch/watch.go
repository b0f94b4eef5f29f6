// Package watch regenerates templates on a cron schedule.
package watch

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a job on a standard five field cron schedule. Runs never
// overlap; a tick that fires while the job is still running is skipped.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(spec string, job func()) (*Scheduler, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return nil, fmt.Errorf("empty cron spec")
	}

	c := cron.New(
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(s, job); err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", s, err)
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for a running job to return.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Tracker remembers the modification time of a set of files.
type Tracker struct {
	mu    sync.Mutex
	paths []string
	modAt map[string]time.Time
}

// NewTracker records the current modification times of paths, so only
// later changes are reported.
func NewTracker(paths []string) *Tracker {
	t := &Tracker{
		paths: append([]string(nil), paths...),
		modAt: make(map[string]time.Time, len(paths)),
	}
	t.Changed()
	return t
}

// Changed returns the paths modified since the previous call. Files that
// cannot be read are left out until they reappear.
func (t *Tracker) Changed() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var changed []string
	for _, path := range t.paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		mod := info.ModTime()
		if prev, ok := t.modAt[path]; ok && prev.Equal(mod) {
			continue
		}
		t.modAt[path] = mod
		changed = append(changed, path)
	}
	return changed
}
