package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Scheduler struct{ jobs []job }
type job struct {
	name   string
	hh, mm int
	f      func(context.Context) error
	stop   chan struct{}
}

func New() *Scheduler { return &Scheduler{} }

// AddDaily registers f to run every day at atHHMM local time.
func (s *Scheduler) AddDaily(name, atHHMM string, f func(context.Context) error) error {
	h, m, err := parseHHMM(atHHMM)
	if err != nil {
		return fmt.Errorf("job %s: %w", name, err)
	}
	s.jobs = append(s.jobs, job{name: name, hh: h, mm: m, f: f, stop: make(chan struct{})})
	return nil
}

func (s *Scheduler) Start() {
	for i := range s.jobs {
		j := s.jobs[i]
		go func() {
			for {
				t := time.NewTimer(time.Until(nextAt(time.Now(), j.hh, j.mm)))
				select {
				case <-t.C:
					if err := j.f(context.Background()); err != nil {
						log.Error().Err(err).Str("job", j.name).Msg("scheduled job failed")
					}
				case <-j.stop:
					t.Stop()
					return
				}
			}
		}()
	}
}

func (s *Scheduler) Stop() {
	for _, j := range s.jobs {
		close(j.stop)
	}
}

func parseHHMM(v string) (int, int, error) {
	parts := strings.Split(v, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, want HH:MM", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", v)
	}
	return h, m, nil
}

func nextAt(now time.Time, h, m int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
