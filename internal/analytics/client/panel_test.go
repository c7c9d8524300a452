package client

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-mall-service/internal/model"
)

type result struct {
	counts *model.DistinctBapCounts
	err    error
}

// gatedSource blocks each call until the test releases it with a result.
type gatedSource struct {
	started chan chan result
}

func (s *gatedSource) DistinctBapCounts(ctx context.Context) (*model.DistinctBapCounts, error) {
	ch := make(chan result)
	s.started <- ch
	r := <-ch
	return r.counts, r.err
}

func TestPanelStartsLoading(t *testing.T) {
	p := NewPanel(&gatedSource{})
	if st := p.State(); st.Status != StatusLoading || st.Counts != nil {
		t.Fatalf("initial state: %+v", st)
	}
}

func TestPanelReadyAndFailed(t *testing.T) {
	src := &gatedSource{started: make(chan chan result)}
	p := NewPanel(src)

	done := make(chan State)
	go func() { done <- p.Refresh(context.Background()) }()
	(<-src.started) <- result{counts: &model.DistinctBapCounts{LastMonth: 3}}
	if st := <-done; st.Status != StatusReady || st.Counts.LastMonth != 3 {
		t.Fatalf("ready state: %+v", st)
	}

	go func() { done <- p.Refresh(context.Background()) }()
	(<-src.started) <- result{err: errors.New("boom")}
	st := <-done
	if st.Status != StatusFailed || st.Err == nil {
		t.Fatalf("failed state: %+v", st)
	}
	if st.Counts == nil || st.Counts.LastMonth != 3 {
		t.Fatal("last good counts should stay visible after a failure")
	}
}

func TestPanelDropsStaleResponse(t *testing.T) {
	src := &gatedSource{started: make(chan chan result)}
	p := NewPanel(src)

	first := make(chan State)
	go func() { first <- p.Refresh(context.Background()) }()
	older := <-src.started

	second := make(chan State)
	go func() { second <- p.Refresh(context.Background()) }()
	newer := <-src.started

	newer <- result{counts: &model.DistinctBapCounts{LastDay: 2}}
	if st := <-second; st.Status != StatusReady || st.Counts.LastDay != 2 {
		t.Fatalf("newer state: %+v", st)
	}

	older <- result{counts: &model.DistinctBapCounts{LastDay: 99}}
	<-first

	if st := p.State(); st.Counts.LastDay != 2 {
		t.Fatalf("stale response applied: %+v", st.Counts)
	}
}

func TestPanelWithoutSourceFails(t *testing.T) {
	p := NewPanel(nil)
	if st := p.Refresh(context.Background()); st.Status != StatusFailed || !errors.Is(st.Err, errNoSource) {
		t.Fatalf("state: %+v", st)
	}
}
