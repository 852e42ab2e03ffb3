package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/alexanderramin/agencyops/internal/db"
)

// Store is the sqlite-backed document store. Single writes commit on their
// own; WithinTx groups writes into one transaction and View groups reads.
// Subscribers are notified after commit with a consistent snapshot of the
// collections they watch.
type Store struct {
	db     *sql.DB
	uow    db.UnitOfWork
	hub    *hub
	now    func() time.Time
	logger *slog.Logger

	// publishMu orders snapshot reads with their delivery so subscribers
	// never receive an older snapshot after a newer one.
	publishMu sync.Mutex

	pollInterval time.Duration
	pollOnce     sync.Once
	pollCtx      context.Context
	stopPoll     context.CancelFunc
	pollDone     chan struct{}
}

type Option func(*Store)

// WithClock overrides the clock used for document timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithChangePolling makes subscriptions follow commits made by other
// processes sharing the database file. Every interval the store checks
// PRAGMA data_version on a dedicated connection. Leave it off for in-memory
// databases, which have a single connection.
func WithChangePolling(interval time.Duration) Option {
	return func(s *Store) { s.pollInterval = interval }
}

// NewStore creates a Store over database. Writes run through uow, which lets
// tests inject transaction failures.
func NewStore(database *sql.DB, uow db.UnitOfWork, opts ...Option) *Store {
	s := &Store{
		db:     database,
		uow:    uow,
		hub:    newHub(),
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pollCtx, s.stopPoll = context.WithCancel(context.Background())
	return s
}

// Transactor runs a function inside a single store transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error
}

// Viewer runs a function inside a single read-only transaction.
type Viewer interface {
	View(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error
}

// Tx is a transaction-scoped Docs.
type Tx struct {
	docs
}

var (
	_ Docs       = (*Store)(nil)
	_ Docs       = (*Tx)(nil)
	_ Transactor = (*Store)(nil)
	_ Viewer     = (*Store)(nil)
)

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	var touched map[Collection]struct{}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, conn db.DBTX) error {
		tx := &Tx{docs{conn: conn, now: s.now, touched: make(map[Collection]struct{})}}
		if err := fn(ctx, tx); err != nil {
			return err
		}
		touched = tx.touched
		return nil
	})
	if err != nil {
		return err
	}
	s.notify(ctx, touched)
	return nil
}

func (s *Store) reader() *docs {
	return &docs{conn: s.db, now: s.now}
}

func (s *Store) Get(ctx context.Context, c Collection, id string) (Document, error) {
	return s.reader().Get(ctx, c, id)
}

func (s *Store) List(ctx context.Context, c Collection) ([]Document, error) {
	return s.reader().List(ctx, c)
}

func (s *Store) Create(ctx context.Context, c Collection, data any) (string, error) {
	var id string
	err := s.WithinTx(ctx, func(ctx context.Context, tx *Tx) error {
		var err error
		id, err = tx.Create(ctx, c, data)
		return err
	})
	return id, err
}

func (s *Store) Replace(ctx context.Context, c Collection, id string, data any) error {
	return s.WithinTx(ctx, func(ctx context.Context, tx *Tx) error {
		return tx.Replace(ctx, c, id, data)
	})
}

func (s *Store) Merge(ctx context.Context, c Collection, id string, partial any) error {
	return s.WithinTx(ctx, func(ctx context.Context, tx *Tx) error {
		return tx.Merge(ctx, c, id, partial)
	})
}

func (s *Store) Delete(ctx context.Context, c Collection, id string) error {
	return s.WithinTx(ctx, func(ctx context.Context, tx *Tx) error {
		return tx.Delete(ctx, c, id)
	})
}

// View runs fn in a read-only transaction, so every read inside it sees the
// same committed state. Writes through tx fail with ErrReadOnly.
func (s *Store) View(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("beginning read transaction: %w", err)
	}
	defer func() { _ = sqlTx.Rollback() }()
	return fn(ctx, &Tx{docs{conn: sqlTx, now: s.now, readOnly: true}})
}

// snapshot lists every collection in cs within one read transaction.
func (s *Store) snapshot(ctx context.Context, cs []Collection) (Snapshot, error) {
	snap := Snapshot{Docs: make(map[Collection][]Document, len(cs))}
	err := s.View(ctx, func(ctx context.Context, tx *Tx) error {
		for _, c := range cs {
			list, err := tx.List(ctx, c)
			if err != nil {
				return err
			}
			snap.Docs[c] = list
		}
		return nil
	})
	return snap, err
}

// Subscribe opens a live subscription over one or more collections. The
// current contents are delivered immediately; after that every commit that
// touches any of them delivers all of them again, read together. The
// subscription ends when ctx is done or Close is called.
func (s *Store) Subscribe(ctx context.Context, collections ...Collection) (*Subscription, error) {
	if len(collections) == 0 {
		return nil, errors.New("subscribe: no collections given")
	}
	for _, c := range collections {
		if err := checkCollection(c); err != nil {
			return nil, err
		}
	}
	cs := slices.Clone(collections)
	slices.Sort(cs)
	cs = slices.Compact(cs)

	s.startPolling()
	sub := s.hub.add(cs)

	s.publishMu.Lock()
	snap, err := s.snapshot(ctx, cs)
	if err == nil {
		s.hub.offerTo(sub, snap)
	}
	s.publishMu.Unlock()
	if err != nil {
		sub.Close()
		return nil, fmt.Errorf("loading initial snapshot of %v: %w", cs, err)
	}

	go func() {
		select {
		case <-ctx.Done():
			sub.Close()
		case <-sub.done:
		}
	}()
	return sub, nil
}

func (s *Store) notify(ctx context.Context, touched map[Collection]struct{}) {
	if len(touched) == 0 {
		return
	}
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	watched := s.hub.watched(touched)
	if len(watched) == 0 {
		return
	}
	// The write already committed; a failed re-read only delays
	// subscribers until the next change.
	snap, err := s.snapshot(context.WithoutCancel(ctx), watched)
	if err != nil {
		s.logger.Warn("snapshot reload failed", "collections", watched, "error", err)
		return
	}
	s.hub.publish(snap, touched)
}

// startPolling launches the data_version poller once, if polling is enabled.
// The baseline is read before the caller loads its initial snapshot, so a
// commit landing in between is still seen.
func (s *Store) startPolling() {
	if s.pollInterval <= 0 {
		return
	}
	s.pollOnce.Do(func() {
		conn, err := s.db.Conn(context.Background())
		if err != nil {
			s.logger.Warn("change polling disabled", "error", err)
			return
		}
		version, err := dataVersion(context.Background(), conn)
		if err != nil {
			_ = conn.Close()
			s.logger.Warn("change polling disabled", "error", err)
			return
		}
		s.pollDone = make(chan struct{})
		go s.poll(conn, version)
	})
}

// poll republishes every watched collection when another connection, in this
// process or another one, commits to the database.
func (s *Store) poll(conn *sql.Conn, last int64) {
	defer close(s.pollDone)
	defer conn.Close()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.pollCtx.Done():
			return
		case <-ticker.C:
		}
		version, err := dataVersion(s.pollCtx, conn)
		if err != nil {
			if s.pollCtx.Err() != nil {
				return
			}
			s.logger.Warn("polling data_version failed", "error", err)
			continue
		}
		if version == last {
			continue
		}
		last = version
		s.logger.Debug("external change detected", "data_version", version)
		s.notify(s.pollCtx, allCollections())
	}
}

func dataVersion(ctx context.Context, conn *sql.Conn) (int64, error) {
	var v int64
	if err := conn.QueryRowContext(ctx, "PRAGMA data_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("reading data_version: %w", err)
	}
	return v, nil
}

func allCollections() map[Collection]struct{} {
	out := make(map[Collection]struct{}, len(Collections))
	for _, c := range Collections {
		out[c] = struct{}{}
	}
	return out
}

// Close stops change polling. Subscriptions stay open until their context
// ends. It is safe to call more than once.
func (s *Store) Close() error {
	s.pollOnce.Do(func() {})
	s.stopPoll()
	if s.pollDone != nil {
		<-s.pollDone
	}
	return nil
}
