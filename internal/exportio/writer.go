package exportio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"content-migrator/internal/logger"
	"content-migrator/internal/model"
)

// IndexFile is the name of the index written next to the chunks.
const IndexFile = "schema.json"

// IndexEntry locates one content type in the chunk files.
type IndexEntry struct {
	UID           string   `json:"uid"`
	Title         string   `json:"title"`
	File          string   `json:"file"`
	MergedFromIDs []string `json:"mergedFromIds"`
}

// Index is the content of schema.json.
type Index struct {
	ContentTypes []IndexEntry `json:"contentTypes"`
	Chunks       []string     `json:"chunks"`
}

// Writer persists merged content models.
type Writer struct {
	dir       string
	chunkSize int
	log       *logger.Logger
}

// NewWriter creates a Writer for dir. chunkSize <= 0 writes a single chunk.
func NewWriter(dir string, chunkSize int, log *logger.Logger) *Writer {
	return &Writer{
		dir:       dir,
		chunkSize: chunkSize,
		log:       log,
	}
}

// Write writes models in chunks followed by the index and returns the index.
func (w *Writer) Write(models []model.MergedContentModel) (*Index, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", w.dir, err)
	}

	size := w.chunkSize
	if size <= 0 || size > len(models) {
		size = max(len(models), 1)
	}

	idx := &Index{ContentTypes: make([]IndexEntry, 0, len(models)), Chunks: []string{}}

	for start := 0; start < len(models); start += size {
		end := min(start+size, len(models))
		name := fmt.Sprintf("chunk-%04d.json", len(idx.Chunks)+1)
		chunk := models[start:end]

		if err := writeJSON(filepath.Join(w.dir, name), chunk); err != nil {
			return nil, err
		}

		idx.Chunks = append(idx.Chunks, name)

		for _, m := range chunk {
			idx.ContentTypes = append(idx.ContentTypes, IndexEntry{
				UID:           m.TargetUID,
				Title:         m.TargetTitle,
				File:          name,
				MergedFromIDs: m.MergedFromIDs,
			})
		}

		if w.log != nil {
			w.log.Debugf("Wrote %s with %d content models", name, len(chunk))
		}
	}

	if err := writeJSON(filepath.Join(w.dir, IndexFile), idx); err != nil {
		return nil, err
	}

	if w.log != nil {
		w.log.Infof("Wrote %d content models in %d chunks to %s", len(models), len(idx.Chunks), w.dir)
	}

	return idx, nil
}

// ReadChunks reads every model listed in the index of dir, in index order.
func ReadChunks(dir string) ([]model.MergedContentModel, error) {
	data, err := os.ReadFile(filepath.Join(dir, IndexFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var idx Index

	err = json.Unmarshal(data, &idx)
	if err != nil {
		return nil, fmt.Errorf("invalid index %s: %w", IndexFile, err)
	}

	var out []model.MergedContentModel

	for _, name := range idx.Chunks {
		models, err := ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}

		out = append(out, models...)
	}

	return out, nil
}

// writeJSON writes v to path through a temporary file and a rename.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}

	_, err = tmp.Write(append(data, '\n'))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
