package client

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-mall-service/internal/model"
)

type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

type State struct {
	Status Status
	Counts *model.DistinctBapCounts
	Err    error
}

// Source is satisfied by *Client.
type Source interface {
	DistinctBapCounts(ctx context.Context) (*model.DistinctBapCounts, error)
}

// Panel holds the counts shown on the dashboard. Overlapping refreshes resolve to the most recently
// started one; results from older requests are dropped.
type Panel struct {
	src Source

	mu    sync.Mutex
	seq   uint64
	state State
}

func NewPanel(src Source) *Panel {
	return &Panel{src: src, state: State{Status: StatusLoading}}
}

func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Refresh fetches counts and applies them unless a newer refresh started meanwhile. The returned
// state is the panel state after this call, which may belong to a newer request.
func (p *Panel) Refresh(ctx context.Context) State {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	// previous counts stay visible while loading
	p.state = State{Status: StatusLoading, Counts: p.state.Counts}
	p.mu.Unlock()

	var (
		counts *model.DistinctBapCounts
		err    error
	)
	if p.src == nil {
		err = errNoSource
	} else {
		counts, err = p.src.DistinctBapCounts(ctx)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq != p.seq {
		return p.state
	}
	if err != nil {
		p.state = State{Status: StatusFailed, Counts: p.state.Counts, Err: err}
	} else {
		p.state = State{Status: StatusReady, Counts: counts}
	}
	return p.state
}
