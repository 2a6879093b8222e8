package app

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bethropolis/blocks/internal/event"
	"github.com/bethropolis/blocks/internal/logger"
	"github.com/bethropolis/blocks/internal/snapshot"
)

// LoadSnapshot reads a snapshot file, picking the codec from its extension.
// A file that does not exist yet yields an empty document.
func LoadSnapshot(path string) (*snapshot.Snapshot, error) {
	format, err := snapshot.FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Infof("App: %s does not exist, starting empty", path)
		return snapshot.NewEmpty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open '%s': %w", path, err)
	}
	defer f.Close()

	s, err := snapshot.Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load '%s': %w", path, err)
	}
	logger.Debugf("App: loaded %d blocks from %s", s.Document().Len(), path)
	return s, nil
}

// SaveSnapshot writes s to path in the format its extension names.
func SaveSnapshot(path string, s *snapshot.Snapshot) error {
	if path == "" {
		return errors.New("no file path specified for saving")
	}
	format, err := snapshot.FormatForPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := snapshot.Encode(&buf, s, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	return nil
}

func (a *App) save() bool {
	if a.filePath == "" {
		a.statusBar.SetTemporaryMessage("No file name: start with blocks <file.json>")
		return true
	}
	if err := SaveSnapshot(a.filePath, a.snap); err != nil {
		logger.Errorf("App: save failed: %v", err)
		a.statusBar.SetTemporaryMessage("Save failed: %v", err)
		return true
	}
	a.saved = a.snap
	format, _ := snapshot.FormatForPath(a.filePath)
	a.events.Dispatch(event.TypeSnapshotSaved, event.SnapshotSavedData{FilePath: a.filePath, Format: format})
	return true
}
