package service

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"github.com/adilgabb/commitgate/models"
)

// SelectionStrategy picks one channel out of a non-empty candidate list.
// Injected so tests can supply a deterministic strategy.
type SelectionStrategy interface {
	Pick(candidates []models.Channel) models.Channel
}

// FirstMatchStrategy always picks the first candidate.
type FirstMatchStrategy struct{}

func (FirstMatchStrategy) Pick(candidates []models.Channel) models.Channel {
	return candidates[0]
}

// RandomStrategy picks uniformly at random.
type RandomStrategy struct{}

func (RandomStrategy) Pick(candidates []models.Channel) models.Channel {
	return candidates[rand.IntN(len(candidates))]
}

// RoundRobinStrategy cycles through the candidates across calls.
type RoundRobinStrategy struct {
	next atomic.Uint64
}

func (r *RoundRobinStrategy) Pick(candidates []models.Channel) models.Channel {
	n := r.next.Add(1) - 1
	return candidates[n%uint64(len(candidates))]
}

// ChannelSelector resolves the backend target for a batch from the
// configured channel list.
type ChannelSelector struct {
	channels []models.Channel
	strategy SelectionStrategy
}

// NewChannelSelector builds a selector over the configured channels. When
// strategy is nil, load-balancing deployments pick randomly and everything
// else falls back to first-match.
func NewChannelSelector(channels []models.Channel, loadBalancing bool, strategy SelectionStrategy) *ChannelSelector {
	if strategy == nil {
		if loadBalancing {
			strategy = RandomStrategy{}
		} else {
			strategy = FirstMatchStrategy{}
		}
	}

	return &ChannelSelector{
		channels: channels,
		strategy: strategy,
	}
}

// Resolve returns exactly one usable channel, or ErrChannelNotFound.
//
// A non-empty name must match a configured channel exactly; a matched
// channel missing credential or location is treated the same as no match.
// Without a name the strategy picks among the automatic candidates: usable
// channels flagged for load balancing, or all usable channels when none are
// flagged.
func (s *ChannelSelector) Resolve(name string) (models.Channel, error) {
	if name != "" {
		for _, ch := range s.channels {
			if ch.Name == name {
				if !ch.Usable() {
					return models.Channel{}, fmt.Errorf("%w: channel %q is not usable", ErrChannelNotFound, name)
				}
				return ch, nil
			}
		}
		return models.Channel{}, fmt.Errorf("%w: %q", ErrChannelNotFound, name)
	}

	usable := make([]models.Channel, 0, len(s.channels))
	balanced := make([]models.Channel, 0, len(s.channels))
	for _, ch := range s.channels {
		if !ch.Usable() {
			continue
		}
		usable = append(usable, ch)
		if ch.LoadBalanced {
			balanced = append(balanced, ch)
		}
	}

	candidates := usable
	if len(balanced) > 0 {
		candidates = balanced
	}
	if len(candidates) == 0 {
		return models.Channel{}, fmt.Errorf("%w: no usable channels configured", ErrChannelNotFound)
	}

	return s.strategy.Pick(candidates), nil
}
