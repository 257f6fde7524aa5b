package route

import (
	"errors"
	"fmt"

	"github.com/AbhinavAnand241201/lightning-payment-route-builder/lnwire"
)

var (
	// ErrEmptyRoute is returned when a route contains no paths at all.
	ErrEmptyRoute = errors.New("route requires at least one path")

	// ErrEmptyPath is returned when a path contains no hops.
	ErrEmptyPath = errors.New("path requires at least one hop")

	// ErrPathIDMismatch is returned when a hop is placed in a path with
	// a different path id.
	ErrPathIDMismatch = errors.New("hop path id does not match path")

	// ErrDuplicateChannel is returned when a channel name occurs more
	// than once within a single path.
	ErrDuplicateChannel = errors.New("channel name repeated within path")
)

// Hop represents one directed channel traversal within a path, described by
// the forwarding policy that the channel's owner advertises for it.
type Hop struct {
	// PathID identifies the path this hop belongs to.
	PathID uint32

	// ChannelName identifies the directed channel, unique within a path.
	ChannelName string

	// CLTVDelta is the minimum difference, in blocks, that the hop
	// requires between the expiry of the HTLC it receives and the expiry
	// of the HTLC it forwards.
	CLTVDelta uint32

	// BaseFee is the fee the hop charges per forwarded HTLC, independent
	// of the forwarded amount.
	BaseFee lnwire.MilliSatoshi

	// FeeRate is the fee the hop charges per millionth of a forwarded
	// millisatoshi.
	FeeRate uint64
}

// Path is one complete ordered hop sequence from the sending node to the
// receiver. The first hop is adjacent to the sender, the last hop adjacent
// to the receiver.
type Path struct {
	// ID is the path id shared by every hop in the path.
	ID uint32

	// Hops is the ordered set of hops in the path, in input order.
	Hops []*Hop
}

// Validate checks that a path is well formed.
func (p *Path) Validate() error {
	if len(p.Hops) == 0 {
		return ErrEmptyPath
	}

	channels := make(map[string]struct{}, len(p.Hops))
	for _, hop := range p.Hops {
		if hop.PathID != p.ID {
			return fmt.Errorf("%w: hop %v has path id %v",
				ErrPathIDMismatch, hop.ChannelName, hop.PathID)
		}

		if _, ok := channels[hop.ChannelName]; ok {
			return fmt.Errorf("%w: %v", ErrDuplicateChannel,
				hop.ChannelName)
		}
		channels[hop.ChannelName] = struct{}{}
	}

	return nil
}

// FinalHop returns the receiver-adjacent hop of the path.
//
// Note: only valid for paths that have passed Validate.
func (p *Path) FinalHop() *Hop {
	return p.Hops[len(p.Hops)-1]
}

// Route is an ordered collection of paths, one per distinct path id, in the
// order the paths first appear in the input. Hop and path order is
// significant and preserved through to the computed results.
type Route struct {
	// Paths is the set of paths in first-seen order.
	Paths []*Path
}

// NewRoute groups an ordered set of hops into paths keyed by their path id,
// preserving hop order within each path and first-seen order across paths,
// and validates the result.
func NewRoute(hops []*Hop) (*Route, error) {
	if len(hops) == 0 {
		return nil, ErrEmptyRoute
	}

	var (
		route Route
		paths = make(map[uint32]*Path)
	)
	for _, hop := range hops {
		path, ok := paths[hop.PathID]
		if !ok {
			path = &Path{ID: hop.PathID}
			paths[hop.PathID] = path
			route.Paths = append(route.Paths, path)
		}

		path.Hops = append(path.Hops, hop)
	}

	if err := route.Validate(); err != nil {
		return nil, err
	}

	return &route, nil
}

// Validate performs validation on a route and each of its paths.
func (r *Route) Validate() error {
	if len(r.Paths) == 0 {
		return ErrEmptyRoute
	}

	for _, path := range r.Paths {
		if err := path.Validate(); err != nil {
			return fmt.Errorf("path %v: %w", path.ID, err)
		}
	}

	return nil
}

// NumHops returns the total number of hops across all of the route's paths.
func (r *Route) NumHops() int {
	var hops int
	for _, path := range r.Paths {
		hops += len(path.Hops)
	}

	return hops
}
