// Package readmodel keeps one shared, continuously updated dashboard view.
// It holds one subscription over every collection, recomputes the aggregate
// from each consistent snapshot and fans the result out to any number of
// watchers.
package readmodel

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/agencyops/internal/app"
	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/repository"
)

// Subscriber is the part of the document store the read model needs.
type Subscriber interface {
	Subscribe(ctx context.Context, collections ...docstore.Collection) (*docstore.Subscription, error)
}

type Option func(*Dashboard)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dashboard) { d.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) { d.now = now }
}

type Dashboard struct {
	store  Subscriber
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	input    app.DashboardInput
	view     app.DashboardView
	watchers map[chan app.DashboardView]struct{}
}

func NewDashboard(store Subscriber, opts ...Option) *Dashboard {
	d := &Dashboard{
		store:    store,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		watchers: make(map[chan app.DashboardView]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.view = app.BuildDashboard(d.input, d.now().UTC())
	return d
}

// Run subscribes to every collection and applies snapshots until ctx is done.
func (d *Dashboard) Run(ctx context.Context) error {
	sub, err := d.store.Subscribe(ctx, docstore.Collections...)
	if err != nil {
		return fmt.Errorf("subscribing: %w", err)
	}
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-sub.C():
			if !ok {
				return nil
			}
			d.apply(snap)
		}
	}
}

// apply replaces the input with snap and recomputes the view once, so no
// view mixes collections read at different times.
func (d *Dashboard) apply(snap docstore.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if snap.Has(docstore.UpcomingProjects) {
		d.input.Sources.Upcoming = decodeAll(d.logger, docstore.UpcomingProjects, snap, repository.DecodeUpcoming)
	}
	if snap.Has(docstore.OperationalBudgets) {
		d.input.Sources.Operational = decodeAll(d.logger, docstore.OperationalBudgets, snap, repository.DecodeOperationalBudget)
	}
	if snap.Has(docstore.Expenses) {
		d.input.Sources.Expenses = decodeAll(d.logger, docstore.Expenses, snap, repository.DecodeExpense)
	}
	if snap.Has(docstore.OnDevelopmentProjects) {
		d.input.OnDevelopment = decodeAll(d.logger, docstore.OnDevelopmentProjects, snap, repository.DecodeOnDevelopment)
	}
	if snap.Has(docstore.CompletedProjects) {
		d.input.Completed = decodeAll(d.logger, docstore.CompletedProjects, snap, repository.DecodeCompleted)
	}
	d.view = app.BuildDashboard(d.input, d.now().UTC())
	d.logger.Debug("dashboard recomputed", "collections", len(snap.Docs), "partial", d.view.Partial())

	for ch := range d.watchers {
		offer(ch, d.view)
	}
}

// decodeAll decodes every document, skipping ones that no longer parse. The
// result is never nil, which marks the collection as loaded.
func decodeAll[T any](logger *slog.Logger, c docstore.Collection, snap docstore.Snapshot, decode func(docstore.Document) (*T, error)) []T {
	docs := snap.Of(c)
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := decode(doc)
		if err != nil {
			logger.Warn("skipping undecodable document", "collection", c, "id", doc.ID, "error", err)
			continue
		}
		out = append(out, *v)
	}
	return out
}

// Current returns the latest view. It is partial until every collection has
// delivered its first snapshot.
func (d *Dashboard) Current() app.DashboardView {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.view
}

// Watch streams views, starting with the current one. A slow reader only
// ever sees the newest view. The channel closes when ctx is done.
func (d *Dashboard) Watch(ctx context.Context) <-chan app.DashboardView {
	ch := make(chan app.DashboardView, 1)

	d.mu.Lock()
	d.watchers[ch] = struct{}{}
	offer(ch, d.view)
	d.mu.Unlock()

	go func() {
		<-ctx.Done()
		d.mu.Lock()
		delete(d.watchers, ch)
		close(ch)
		d.mu.Unlock()
	}()
	return ch
}

// offer must be called with d.mu held.
func offer(ch chan app.DashboardView, view app.DashboardView) {
	select {
	case ch <- view:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- view:
	default:
	}
}
