package state

import (
	"encoding/json"
	"log"
	"sync"

	"dailyhealth.app/agent-server/internal/kv"
)

// StateKey is the fixed key the serialized AppState lives under.
const StateKey = "myhealthagent_state_v2"

// Store owns the application state. Every mutation goes through Apply,
// which runs a transform under the lock and then writes the whole blob
// back to the key-value store. Persistence is fire-and-forget: a failed
// write is logged, the in-memory state stays authoritative.
//
// The store does not serialize overlapping gateway flows: two concurrent
// synthesis calls both land their writes and the later one wins. The
// IsSynthesizing flag is advisory for the view layer, not a lock.
type Store struct {
	mu    sync.RWMutex
	state AppState
	kv    kv.Store
}

// NewStore loads any saved state from the key-value store, merging
// recovered fields over the defaults so blobs written by older versions
// keep working. A corrupt blob is logged and discarded.
func NewStore(kvs kv.Store) *Store {
	s := &Store{state: DefaultState(), kv: kvs}
	s.load()
	return s
}

func (s *Store) load() {
	raw, ok, err := s.kv.Get(StateKey)
	if err != nil {
		log.Printf("Failed to read saved state, starting fresh: %v", err)
		return
	}
	if !ok {
		return
	}

	// Decoding into the default value leaves absent fields at their
	// defaults, which is the backward-compatibility contract.
	loaded := DefaultState()
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		log.Printf("Failed to decode saved state, starting fresh: %v", err)
		return
	}
	if loaded.History == nil {
		loaded.History = []DailySummary{}
	}
	s.state = loaded
}

// Apply runs the transform and persists the result. It returns a deep
// copy of the successor state.
func (s *Store) Apply(t Transform) AppState {
	s.mu.Lock()
	s.state = t(s.state)
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	return snapshot
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) persist(snapshot AppState) {
	blob, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("Failed to serialize state: %v", err)
		return
	}
	if err := s.kv.Set(StateKey, string(blob)); err != nil {
		log.Printf("Failed to persist state: %v", err)
	}
}
