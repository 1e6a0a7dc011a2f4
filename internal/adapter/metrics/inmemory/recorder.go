package inmemory

import (
	"sync"

	"wayfarer/internal/app/ports"
)

type Snapshot struct {
	ActionTotal        uint64            `json:"action_total"`
	ActionRejected     uint64            `json:"action_rejected"`
	GenerationFailures uint64            `json:"generation_failures"`
	TransportFailures  uint64            `json:"transport_failures"`
	ByKind             map[string]uint64 `json:"by_kind"`
}

type Recorder struct {
	mu          sync.Mutex
	rejected    uint64
	genFailures uint64
	netFailures uint64
	byKind      map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byKind: map[string]uint64{},
	}
}

func (r *Recorder) RecordAction(kind ports.ActionKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKind[string(kind)]++
}

func (r *Recorder) RecordRejected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
}

func (r *Recorder) RecordGenerationFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.genFailures++
}

func (r *Recorder) RecordTransportFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.netFailures++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionRejected:     r.rejected,
		GenerationFailures: r.genFailures,
		TransportFailures:  r.netFailures,
		ByKind:             make(map[string]uint64, len(r.byKind)),
	}
	for k, v := range r.byKind {
		out.ByKind[k] = v
		out.ActionTotal += v
	}
	return out
}
