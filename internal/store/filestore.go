package store

import (
	"encoding/json"
	"os"

	"stocktrack_backend/internal/ledger"

	"github.com/rs/zerolog/log"
)

// FileStore persists ledger snapshots as a JSON file. It is the local,
// single-device store: reads fall back to the empty state and writes are
// best-effort, so the ledger itself never sees a storage failure.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given path. The file is not
// created until the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the last saved snapshot, or the empty state when the file
// is missing or unreadable.
func (fs *FileStore) Load() ledger.State {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", fs.path).Msg("Failed to read ledger snapshot, starting empty")
		}
		return ledger.EmptyState()
	}

	var state ledger.State
	if err := json.Unmarshal(data, &state); err != nil {
		log.Warn().Err(err).Str("path", fs.path).Msg("Corrupt ledger snapshot, starting empty")
		return ledger.EmptyState()
	}
	if state.Items == nil {
		state.Items = []ledger.Item{}
	}
	if state.Movements == nil {
		state.Movements = []ledger.Movement{}
	}
	if state.Challans == nil {
		state.Challans = []ledger.Challan{}
	}
	return state
}

// Save writes the snapshot. Failures are logged and swallowed.
func (fs *FileStore) Save(state ledger.State) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.Warn().Err(err).Str("path", fs.path).Msg("Failed to encode ledger snapshot")
		return
	}
	if err := os.WriteFile(fs.path, data, 0o644); err != nil {
		log.Warn().Err(err).Str("path", fs.path).Msg("Failed to write ledger snapshot")
	}
}
