package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"marketpulse/internal/model"
	"os"
	"path/filepath"
)

// TickerStore persists the tracked universe. Save always replaces the whole
// set; it never merges with what was stored before.
type TickerStore interface {
	Load(ctx context.Context) ([]model.TickerRecord, error)
	Save(ctx context.Context, records []model.TickerRecord) error
}

type FileTickerRepository struct {
	path string
}

func NewFileTickerRepository(path string) *FileTickerRepository {
	return &FileTickerRepository{path: path}
}

func (r *FileTickerRepository) Load(ctx context.Context) ([]model.TickerRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read ticker file: %w", err)
	}

	records, err := decodeTickers(data)
	if err != nil {
		return nil, fmt.Errorf("decode ticker file %s: %w", r.path, err)
	}
	return records, nil
}

// Save writes to a temporary file next to the target and renames it over the
// old file, so a failed write leaves the previous universe in place.
func (r *FileTickerRepository) Save(ctx context.Context, records []model.TickerRecord) error {
	data, err := encodeTickers(records)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp ticker file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp ticker file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp ticker file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace ticker file: %w", err)
	}
	return nil
}

func encodeTickers(records []model.TickerRecord) ([]byte, error) {
	if records == nil {
		records = []model.TickerRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode tickers: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeTickers(data []byte) ([]model.TickerRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.TickerRecord{}, nil
	}

	var records []model.TickerRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.TickerRecord{}
	}
	return records, nil
}
