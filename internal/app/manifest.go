package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	apperrors "crimescope/internal/errors"
	"crimescope/pkg/contracts/domain"
)

// StageRecord is the execution record of one pipeline stage.
type StageRecord struct {
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Duration  string    `json:"duration"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
}

// RunManifest tracks one pipeline run: which stages ran, how long they
// took, and which artifacts the run produced. It is written alongside the
// report artifacts so a completed output directory is self-describing.
type RunManifest struct {
	TraceID     string        `json:"trace_id"`
	InputPath   string        `json:"input_path"`
	Categories  []string      `json:"categories"`
	StartTime   time.Time     `json:"start_time"`
	Stages      []StageRecord `json:"stages"`
	Artifacts   []string      `json:"artifacts"`
	Status      string        `json:"status"`
	LastUpdated time.Time     `json:"last_updated"`
}

// newRunManifest starts a manifest for a run over the given input.
func newRunManifest(traceID, inputPath string, categories []domain.Category) *RunManifest {
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.String())
	}
	now := time.Now()
	return &RunManifest{
		TraceID:     traceID,
		InputPath:   inputPath,
		Categories:  names,
		StartTime:   now,
		Stages:      []StageRecord{},
		Artifacts:   []string{},
		Status:      "running",
		LastUpdated: now,
	}
}

// recordStage appends one stage execution.
func (m *RunManifest) recordStage(name string, start time.Time, duration time.Duration, err error) {
	record := StageRecord{
		Name:      name,
		StartTime: start,
		Duration:  duration.String(),
		Status:    "completed",
	}
	if err != nil {
		record.Status = "failed"
		record.Error = err.Error()
	}
	m.Stages = append(m.Stages, record)
	m.LastUpdated = time.Now()
}

// addArtifact records one written output file.
func (m *RunManifest) addArtifact(path string) {
	m.Artifacts = append(m.Artifacts, path)
	m.LastUpdated = time.Now()
}

// complete marks the run finished.
func (m *RunManifest) complete() {
	m.Status = "completed"
	m.LastUpdated = time.Now()
}

// Write saves the manifest as indented JSON.
func (m *RunManifest) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create manifest directory", err).
			WithContext("path", path)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("failed to encode run manifest", err).
			WithContext("path", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewStorageError("failed to write run manifest", err).
			WithContext("path", path)
	}
	return nil
}
