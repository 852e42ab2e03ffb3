package docstore

import (
	"slices"
	"sync"
)

// Snapshot holds the contents of one or more collections, all read in the
// same transaction.
type Snapshot struct {
	Docs map[Collection][]Document
}

// Of returns the documents of c, or nil when c is not part of the snapshot.
func (s Snapshot) Of(c Collection) []Document {
	return s.Docs[c]
}

func (s Snapshot) Has(c Collection) bool {
	_, ok := s.Docs[c]
	return ok
}

// Subscription is a live stream of snapshots over a fixed set of
// collections. Every snapshot carries all of them, read together, so a
// project moving between stages never shows up in both or neither. The
// channel holds at most one pending snapshot; a newer snapshot replaces an
// unread one, so slow readers always catch up to the latest state and never
// hold up writers.
type Subscription struct {
	collections []Collection
	ch          chan Snapshot
	hub         *hub
	done        chan struct{}
	once        sync.Once
}

// C returns the snapshot channel. It is closed by Close.
func (s *Subscription) C() <-chan Snapshot {
	return s.ch
}

func (s *Subscription) Collections() []Collection {
	return slices.Clone(s.collections)
}

// Close unsubscribes and closes the channel. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.done)
	})
}

// wants reports whether any collection in touched is one sub watches.
func (s *Subscription) wants(touched map[Collection]struct{}) bool {
	for _, c := range s.collections {
		if _, ok := touched[c]; ok {
			return true
		}
	}
	return false
}

// project narrows snap to the collections sub watches. It reports false when
// snap lacks one of them, which happens to a subscriber added after snap was
// planned; that subscriber gets its initial snapshot from Subscribe instead.
func (s *Subscription) project(snap Snapshot) (Snapshot, bool) {
	out := Snapshot{Docs: make(map[Collection][]Document, len(s.collections))}
	for _, c := range s.collections {
		docs, ok := snap.Docs[c]
		if !ok {
			return Snapshot{}, false
		}
		out.Docs[c] = docs
	}
	return out, true
}

type hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[*Subscription]struct{})}
}

func (h *hub) add(collections []Collection) *Subscription {
	sub := &Subscription{
		collections: collections,
		ch:          make(chan Snapshot, 1),
		hub:         h,
		done:        make(chan struct{}),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[sub] = struct{}{}
	return sub
}

func (h *hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
}

// watched returns the collections some subscriber interested in touched
// needs, sorted. It is empty when nobody cares about the change.
func (h *hub) watched(touched map[Collection]struct{}) []Collection {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := make(map[Collection]struct{})
	for sub := range h.subs {
		if !sub.wants(touched) {
			continue
		}
		for _, c := range sub.collections {
			set[c] = struct{}{}
		}
	}
	out := make([]Collection, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// publish delivers snap to every subscriber whose collections intersect
// touched. snap must cover all collections those subscribers watch.
func (h *hub) publish(snap Snapshot, touched map[Collection]struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if !sub.wants(touched) {
			continue
		}
		if view, ok := sub.project(snap); ok {
			offer(sub.ch, view)
		}
	}
}

// offerTo delivers to a single subscriber if it is still registered.
func (h *hub) offerTo(sub *Subscription, snap Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; !ok {
		return
	}
	if view, ok := sub.project(snap); ok {
		offer(sub.ch, view)
	}
}

// offer must be called with the hub lock held: it is the only sender.
func offer(ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}
