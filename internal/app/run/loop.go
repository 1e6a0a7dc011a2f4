package run

import (
	"context"
	"errors"
	"time"

	"wayfarer/internal/app/decide"
	"wayfarer/internal/app/ports"
	"wayfarer/internal/config"
	"wayfarer/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Loop is the agent's single thread of control: perceive, decide,
// optionally generate text, act, record. One decision per eligible tick,
// strictly sequential; cancellation is tick-granular.
type Loop struct {
	World   ports.WorldClient
	Journal ports.Journal
	Engine  *decide.Engine
	Tuning  config.Tuning
}

// Run polls until the context is cancelled. Transport failures back off
// and retry; nothing inside the loop is treated as fatal.
func (l *Loop) Run(ctx context.Context) error {
	l.warmSummaries(ctx)

	for ctx.Err() == nil {
		snap, err := l.look(ctx)
		if err != nil {
			if l.Engine.Metrics != nil {
				l.Engine.Metrics.RecordTransportFailure()
			}
			hlog.Warnf("look failed, backing off: %v", err)
			if !sleep(ctx, l.Tuning.ErrorBackoff()) {
				break
			}
			continue
		}

		if !snap.CanAct {
			if !sleep(ctx, l.Tuning.PollInterval()) {
				break
			}
			continue
		}

		l.runTurn(ctx, snap)

		if !sleep(ctx, l.Tuning.PollInterval()) {
			break
		}
	}

	l.sayDeparture()
	return nil
}

// runTurn executes exactly one decide-act-record cycle for an eligible
// tick.
func (l *Loop) runTurn(ctx context.Context, snap world.Snapshot) {
	act := l.Engine.Decide(ctx, snap)
	if act.Kind == decide.KindSkip {
		hlog.Debugf("turn %d tick %d: skip (%s)", l.Engine.Session.Turn, snap.Clock.Tick, act.Reason)
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, l.Tuning.RequestTimeout())
	outcome, submitErr := l.World.Submit(reqCtx, act.Kind, act.Params())
	cancel()

	summary := l.Engine.Observe(ctx, snap, act, submitErr)
	l.record(ctx, snap, act, submitErr)

	switch {
	case submitErr == nil:
		hlog.Infof("turn %d tick %d: %s (%s)", l.Engine.Session.Turn, snap.Clock.Tick, act.Kind, act.Reason)
		if outcome.LeveledUp {
			hlog.Infof("leveled up! now level %d", outcome.NewLevel)
		}
	case errors.Is(submitErr, ports.ErrRejected):
		hlog.Warnf("action %s rejected: %v", act.Kind, submitErr)
	default:
		hlog.Warnf("submit failed: %v", submitErr)
	}

	if summary != nil {
		l.persistSummary(ctx, *summary)
	}
}

func (l *Loop) look(ctx context.Context) (world.Snapshot, error) {
	reqCtx, cancel := context.WithTimeout(ctx, l.Tuning.RequestTimeout())
	defer cancel()
	return l.World.Look(reqCtx)
}

// warmSummaries seeds long-term memory from the server, falling back to
// the local cache when the server is unreachable at startup.
func (l *Loop) warmSummaries(ctx context.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, l.Tuning.RequestTimeout())
	sums, err := l.World.ListSummaries(reqCtx)
	cancel()
	if err != nil && l.Journal != nil {
		sums, err = l.Journal.CachedSummaries(ctx)
	}
	if err != nil {
		hlog.Warnf("no summaries recovered at startup: %v", err)
		return
	}
	for _, s := range sums {
		l.Engine.Session.Memory.AddSummary(s)
	}
	if len(sums) > 0 {
		hlog.Infof("recalled %d conversation summaries", len(sums))
	}
}

func (l *Loop) persistSummary(ctx context.Context, sum ports.StoredSummary) {
	reqCtx, cancel := context.WithTimeout(ctx, l.Tuning.RequestTimeout())
	defer cancel()
	if ok, err := l.World.SaveSummary(reqCtx, sum); err != nil || !ok {
		hlog.Warnf("summary for %s not persisted: %v", sum.PeerID, err)
	}
	if l.Journal != nil {
		if err := l.Journal.CacheSummary(ctx, sum); err != nil {
			hlog.Warnf("summary cache write failed: %v", err)
		}
	}
}

func (l *Loop) record(ctx context.Context, snap world.Snapshot, act decide.Action, submitErr error) {
	if l.Journal == nil {
		return
	}
	outcome := "success"
	if submitErr != nil {
		outcome = submitErr.Error()
	}
	rec := ports.DecisionRecord{
		Turn:    l.Engine.Session.Turn,
		Tick:    snap.Clock.Tick,
		Kind:    string(act.Kind),
		Detail:  act.Reason,
		Outcome: outcome,
		X:       snap.Character.Position.X,
		Y:       snap.Character.Position.Y,
	}
	if err := l.Journal.RecordDecision(ctx, rec); err != nil {
		hlog.Warnf("journal write failed: %v", err)
	}
}

// sayDeparture gives the world a parting thought on shutdown. Best
// effort; the loop is already past caring about failures.
func (l *Loop) sayDeparture() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, _ = l.World.Submit(ctx, ports.ActionThink, ports.ActionParams{
		Message: "Time to rest my eyes for a while.",
	})
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
