package mock

import (
	"context"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

// Submission records one submitted action for assertions.
type Submission struct {
	Kind   ports.ActionKind
	Params ports.ActionParams
}

// Client is a scripted ports.WorldClient for tests: snapshots play back
// in order (the last one repeats), submissions are recorded, and errors
// can be injected per call.
type Client struct {
	Profile   world.Profile
	Snapshots []world.Snapshot
	Summaries []ports.StoredSummary

	LookErr   error
	SubmitErr error

	Submitted []Submission
	Saved     []ports.StoredSummary

	cursor int
}

func (c *Client) Me(_ context.Context) (world.Profile, error) {
	return c.Profile, nil
}

func (c *Client) Look(_ context.Context) (world.Snapshot, error) {
	if c.LookErr != nil {
		return world.Snapshot{}, c.LookErr
	}
	if len(c.Snapshots) == 0 {
		return world.Snapshot{}, ports.ErrNotFound
	}
	snap := c.Snapshots[c.cursor]
	if c.cursor < len(c.Snapshots)-1 {
		c.cursor++
	}
	return snap, nil
}

func (c *Client) Submit(_ context.Context, kind ports.ActionKind, params ports.ActionParams) (ports.Outcome, error) {
	c.Submitted = append(c.Submitted, Submission{Kind: kind, Params: params})
	if c.SubmitErr != nil {
		return ports.Outcome{}, c.SubmitErr
	}
	return ports.Outcome{Accepted: true}, nil
}

func (c *Client) SaveSummary(_ context.Context, summary ports.StoredSummary) (bool, error) {
	c.Saved = append(c.Saved, summary)
	return true, nil
}

func (c *Client) ListSummaries(_ context.Context) ([]ports.StoredSummary, error) {
	return c.Summaries, nil
}
