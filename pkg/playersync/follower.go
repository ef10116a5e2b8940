// Package playersync implements the receiving side of the SYNC protocol: how
// a client applies a remote playback state to its local player without
// stuttering on jitter and without echoing the change back to the relay.
package playersync

import (
	"errors"
	"math"
	"sync"
	"time"
)

const (
	DefaultDriftThreshold = 1.5
	DefaultSuppressWindow = 600 * time.Millisecond

	minDriftThreshold = 0.5
	maxDriftThreshold = 1.5
	minSuppressWindow = 300 * time.Millisecond
	maxSuppressWindow = 600 * time.Millisecond
)

var (
	ErrDriftThresholdOutOfRange = errors.New("drift threshold must be between 0.5 and 1.5 seconds")
	ErrSuppressWindowOutOfRange = errors.New("suppress window must be between 300ms and 600ms")
)

// Player is the local media element.
type Player interface {
	CurrentTime() float64
	Paused() bool
	Seek(seconds float64)
	Play()
	Pause()
}

type State struct {
	IsPlaying   bool    `json:"isPlaying"`
	CurrentTime float64 `json:"currentTime"`
}

type Config struct {
	// DriftThreshold in seconds. Zero means DefaultDriftThreshold.
	DriftThreshold float64
	// SuppressWindow after a remote update. Zero means DefaultSuppressWindow.
	SuppressWindow time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Result reports what Apply changed on the local player.
type Result struct {
	Seeked bool
	Played bool
	Paused bool
}

func (r Result) Changed() bool {
	return r.Seeked || r.Played || r.Paused
}

// Follower applies remote states to a Player. It is either idle or applying a
// remote update; the latter lasts until suppressUntil.
type Follower struct {
	player         Player
	driftThreshold float64
	suppressWindow time.Duration
	now            func() time.Time

	mu            sync.Mutex
	suppressUntil time.Time
}

func NewFollower(player Player, cfg *Config) (*Follower, error) {
	f := &Follower{
		player:         player,
		driftThreshold: DefaultDriftThreshold,
		suppressWindow: DefaultSuppressWindow,
		now:            time.Now,
	}
	if cfg == nil {
		return f, nil
	}

	if cfg.DriftThreshold != 0 {
		if cfg.DriftThreshold < minDriftThreshold || cfg.DriftThreshold > maxDriftThreshold {
			return nil, ErrDriftThresholdOutOfRange
		}
		f.driftThreshold = cfg.DriftThreshold
	}
	if cfg.SuppressWindow != 0 {
		if cfg.SuppressWindow < minSuppressWindow || cfg.SuppressWindow > maxSuppressWindow {
			return nil, ErrSuppressWindowOutOfRange
		}
		f.suppressWindow = cfg.SuppressWindow
	}
	if cfg.Now != nil {
		f.now = cfg.Now
	}

	return f, nil
}

// Apply brings the local player to remote. Position is only corrected when the
// drift exceeds the threshold, play/pause only when it differs. Local events
// are suppressed for the suppress window afterwards.
func (f *Follower) Apply(remote State) Result {
	f.mu.Lock()
	f.suppressUntil = f.now().Add(f.suppressWindow)
	f.mu.Unlock()

	var res Result
	if math.Abs(f.player.CurrentTime()-remote.CurrentTime) > f.driftThreshold {
		f.player.Seek(remote.CurrentTime)
		res.Seeked = true
	}

	paused := f.player.Paused()
	switch {
	case remote.IsPlaying && paused:
		f.player.Play()
		res.Played = true
	case !remote.IsPlaying && !paused:
		f.player.Pause()
		res.Paused = true
	}

	return res
}

// Suppressed reports whether a remote update is still being applied.
func (f *Follower) Suppressed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now().Before(f.suppressUntil)
}

// LocalChange is called from the player's own play/pause/seek listeners. It
// returns the state to send to the relay, or false while suppressed.
func (f *Follower) LocalChange() (State, bool) {
	if f.Suppressed() {
		return State{}, false
	}

	return State{
		IsPlaying:   !f.player.Paused(),
		CurrentTime: f.player.CurrentTime(),
	}, true
}
