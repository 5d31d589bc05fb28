package main

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	Theme string `json:"theme"`
	Sync  bool   `json:"sync"`
}

// HighScoreStore is the persistence collaborator for the single best-score
// record. A missing record is reported via found=false, not an error.
type HighScoreStore interface {
	Load() (best int, found bool, err error)
	Save(best int) error
}

type highScoreRecord struct {
	Best int    `json:"best"`
	When string `json:"when"`
}

type FileStore struct {
	path string
}

func NewFileStore() (*FileStore, error) {
	path, err := dataPath("highscore.json")
	if err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load() (int, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	var record highScoreRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return 0, false, err
	}
	return record.Best, true, nil
}

func (s *FileStore) Save(best int) error {
	record := highScoreRecord{
		Best: best,
		When: time.Now().Format("2006-01-02 15:04"),
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func loadConfig() (Config, error) {
	config := Config{
		Theme: themes[0].Name,
	}
	path, err := dataPath("config.json")
	if err != nil {
		return config, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config, nil
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return config, err
	}
	if config.Theme == "" {
		config.Theme = themes[0].Name
	}
	return config, nil
}

func saveConfig(config Config) error {
	path, err := dataPath("config.json")
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func dataPath(name string) (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, "blockfall")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
