package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"example.com/ai-watch/internal/models"
	"example.com/ai-watch/internal/validation"
)

// Store владеет единственным JSON-документом на диске. Каждая публичная
// операция берет эксклюзивную блокировку, перечитывает документ, меняет его
// в памяти и записывает обратно атомарно.
type Store struct {
	path string
	mu   sync.Mutex
}

// Open создает хранилище и инициализирует файл пустым документом при отсутствии.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.write(emptyDocument()); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat data file: %w", err)
	}

	return s, nil
}

// Config возвращает документ целиком.
func (s *Store) Config() (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

// ReplaceConfig атомарно замещает все содержимое хранилища новым документом.
// Перекрестные ссылки не проверяются; требуется только форма документа.
func (s *Store) ReplaceConfig(payload map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := payload["services"]; !ok {
		return validation.Errorf("document must contain a %q list", "services")
	}
	if _, ok := payload["accounts"]; !ok {
		return validation.Errorf("document must contain an %q list", "accounts")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return validation.Errorf("document is not serializable")
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return validation.Errorf("malformed document")
	}
	backfill(&doc)

	return s.write(doc)
}

func (s *Store) read() (models.Document, error) {
	var doc models.Document

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return doc, fmt.Errorf("read data file: %w", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return doc, formatErrorf("data file is not a JSON object")
	}
	if _, ok := top["services"]; !ok {
		return doc, formatErrorf("data file is missing the %q key", "services")
	}
	if _, ok := top["accounts"]; !ok {
		return doc, formatErrorf("data file is missing the %q key", "accounts")
	}

	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, formatErrorf("data file does not match the document shape")
	}

	// Старые документы без этих коллекций дополняются только в памяти;
	// файл меняется лишь при следующей записи.
	backfill(&doc)

	return doc, nil
}

func (s *Store) write(doc models.Document) error {
	backfill(&doc)

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	raw = append(raw, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".db-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace data file: %w", err)
	}

	return nil
}

func emptyDocument() models.Document {
	return models.Document{
		Services:        []models.Service{},
		Accounts:        []models.Account{},
		UsageBudgets:    []models.UsageBudget{},
		Recommendations: []models.Recommendation{},
	}
}

func backfill(doc *models.Document) {
	if doc.Services == nil {
		doc.Services = []models.Service{}
	}
	if doc.Accounts == nil {
		doc.Accounts = []models.Account{}
	}
	if doc.UsageBudgets == nil {
		doc.UsageBudgets = []models.UsageBudget{}
	}
	if doc.Recommendations == nil {
		doc.Recommendations = []models.Recommendation{}
	}
}
