package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/subsim/internal/config"
	"github.com/san-kum/subsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
	configFile   = "config.yaml"
)

// Store keeps one directory per run under baseDir.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Density    float64            `json:"density"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
}

// NewRunID is the preset name plus a short random suffix.
func NewRunID(preset string) string {
	if preset == "" {
		preset = "run"
	}
	return fmt.Sprintf("%s_%s", preset, uuid.NewString()[:8])
}

// Save writes the run's metadata, effective config and samples.
func (s *Store) Save(preset string, cfg *config.Config, result *sim.Result) (string, error) {
	runID := NewRunID(preset)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Preset:     preset,
		Timestamp:  time.Now(),
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Integrator: cfg.Integrator,
		Density:    cfg.Fluid.Density,
		Steps:      result.StepsTaken,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}
