package ledger

// Store loads and saves ledger snapshots. Load returns the last saved
// snapshot or the empty state; Save is best-effort and must not fail the
// caller.
type Store interface {
	Load() State
	Save(State)
}

// Tracker binds a snapshot to a store, applying events one at a time and
// writing back after every transition. It is single-threaded by design:
// each dispatch completes before the next one starts.
type Tracker struct {
	store Store
	state State
}

// NewTracker loads the last persisted snapshot from the store.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store, state: store.Load()}
}

// Dispatch applies one event and persists the resulting snapshot.
func (t *Tracker) Dispatch(e Event) Outcome {
	next, outcome := Apply(t.state, e)
	t.state = next
	t.store.Save(next)
	return outcome
}

// State returns the current snapshot.
func (t *Tracker) State() State {
	return t.state
}
