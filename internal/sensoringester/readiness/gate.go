package readiness

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/clock"
)

// State of a Gate. A gate starts waiting and becomes connected once its probe first
// succeeds. There is no failure state: an unavailable dependency is retried forever
// and stalls startup rather than failing it.
type State string

const (
	StateWaiting   State = "waiting"
	StateConnected State = "connected"
)

// Gate blocks until a dependency becomes reachable, probing at a fixed interval.
type Gate struct {
	pollInterval time.Duration
	clock        clock.Clock
	state        State
}

func NewGate(pollInterval time.Duration) *Gate {
	return &Gate{
		pollInterval: pollInterval,
		clock:        clock.RealClock{},
		state:        StateWaiting,
	}
}

func (g *Gate) State() State {
	return g.state
}

// Await runs probe until it succeeds, logging each failed attempt and sleeping
// pollInterval between attempts. Probe failures are never surfaced; the only error
// Await returns is the context's, on cancellation.
func (g *Gate) Await(ctx context.Context, description string, probe func() error) error {
	for {
		err := probe()
		if err == nil {
			g.state = StateConnected
			log.Infof("%s is ready", description)
			return nil
		}
		log.WithError(err).Warnf("Waiting for %s, retrying in %s", description, g.pollInterval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-g.clock.After(g.pollInterval):
		}
	}
}
