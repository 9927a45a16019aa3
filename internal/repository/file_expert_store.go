package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-triage/internal/domain"
)

// FileExpertStore keeps the expert roster in a JSON array file. A missing file
// is seeded with a small default roster on first load.
type FileExpertStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

// NewFileExpertStore creates a store backed by the given file path.
func NewFileExpertStore(path string, logger *zap.Logger) *FileExpertStore {
	return &FileExpertStore{path: path, logger: logger}
}

// LoadExperts reads the roster, writing the seed roster when the file is absent.
func (s *FileExpertStore) LoadExperts(ctx context.Context) ([]domain.Expert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileExpertStore) loadLocked() ([]domain.Expert, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			seed := seedExperts()
			if err := s.writeLocked(seed); err != nil {
				return nil, err
			}
			s.logger.Info("seeded expert roster", zap.String("path", s.path), zap.Int("experts", len(seed)))
			return seed, nil
		}
		return nil, err
	}

	var experts []domain.Expert
	if err := json.Unmarshal(data, &experts); err != nil {
		return nil, err
	}
	return experts, nil
}

// IncrementLoad bumps the expert's load counter under the store mutex and
// rewrites the file atomically. A missing expert is a no-op.
func (s *FileExpertStore) IncrementLoad(ctx context.Context, expertID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	experts, err := s.loadLocked()
	if err != nil {
		return err
	}
	for i := range experts {
		if experts[i].ID == expertID {
			experts[i].CurrentLoad++
			return s.writeLocked(experts)
		}
	}
	s.logger.Debug("load increment for unknown expert ignored", zap.String("expert_id", expertID))
	return nil
}

func (s *FileExpertStore) writeLocked(experts []domain.Expert) error {
	data, err := json.MarshalIndent(experts, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(s.path, bytes.NewReader(append(data, '\n')))
}

func seedExperts() []domain.Expert {
	return []domain.Expert{
		{
			ID:           "T001",
			Name:         "Ayşe Hanım, Teknik Uzman",
			Contact:      "ayse@example.com",
			Expertise:    []string{"hardware", "performance"},
			Availability: true,
		},
		{
			ID:           "T002",
			Name:         "Mehmet Bey, Yazılım Uzmanı",
			Contact:      "mehmet@example.com",
			Expertise:    []string{"software", "login", "password", "network"},
			Availability: true,
		},
		{
			ID:           "T003",
			Name:         "Elif Hanım, Ağ Uzmanı",
			Contact:      "elif@example.com",
			Expertise:    []string{"network", "wifi", "vpn"},
			Availability: true,
		},
	}
}
