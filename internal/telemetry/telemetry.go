// Package telemetry is a SQLite-backed run ledger recording one row per
// hydration or mappings-completion run: phase, duration, class/failure
// counts. It is not mapping-set persistence (spec §1/§6 keep that an
// explicit non-goal) — purely engine-run observability, the ambient
// analogue of the teacher's models.Session/Stage/Apply ledger
// (models/models.go, db/sqlite.go).
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Phase names the kind of engine run a Run row records.
type Phase string

const (
	PhaseHydration          Phase = "hydration"
	PhaseMappingsCompletion Phase = "mappings-completion"
)

// Run is one completed (or failed) engine run, gorm-tagged the way the
// teacher's models.Stage/Apply/Session structs are.
type Run struct {
	ID    string `gorm:"primaryKey;type:varchar(36)"`
	Phase string `gorm:"type:varchar(32);not null;index"`

	StartedAt  time.Time `gorm:"not null"`
	DurationMS int64     `gorm:"not null"`

	ClassCount   int `gorm:"not null;default:0"`
	FailureCount int `gorm:"not null;default:0"`

	// Detail is a small JSON blob of phase-specific counters (e.g. merge
	// failures by target, hydrator names that ran), mirroring the
	// teacher's use of datatypes.JSON columns for free-form structured
	// detail on Stage/Session rows.
	Detail datatypes.JSON
}

// TableName matches the teacher's per-model TableName override style.
func (Run) TableName() string { return "runs" }

// Store wraps a gorm.DB opened against the telemetry ledger.
type Store struct {
	db *gorm.DB
}

// Open connects to dsn (a SQLite file path) and migrates the schema,
// following the teacher's db.Connect shape: ensure the parent directory
// exists for a file DSN, then gorm.Open, then AutoMigrate.
func Open(dsn string) (*Store, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("telemetry: creating database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("telemetry: connecting: %w", err)
	}
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("telemetry: migrating: %w", err)
	}
	return &Store{db: db}, nil
}

// RunRecord is the input to RecordRun; ID and StartedAt are assigned by
// the caller so tests can control them deterministically.
type RunRecord struct {
	ID           string
	Phase        Phase
	StartedAt    time.Time
	Duration     time.Duration
	ClassCount   int
	FailureCount int
	Detail       map[string]any
}

// RecordRun inserts one row for a completed run. A zero ID is replaced
// with a freshly generated UUID.
func (s *Store) RecordRun(r RunRecord) error {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}
	detail, err := json.Marshal(r.Detail)
	if err != nil {
		return fmt.Errorf("telemetry: encoding detail: %w", err)
	}
	row := Run{
		ID:           id,
		Phase:        string(r.Phase),
		StartedAt:    r.StartedAt,
		DurationMS:   r.Duration.Milliseconds(),
		ClassCount:   r.ClassCount,
		FailureCount: r.FailureCount,
		Detail:       datatypes.JSON(detail),
	}
	return s.db.Create(&row).Error
}

// RecentRuns returns up to limit rows, most recent first, optionally
// filtered to one phase (empty string means any phase).
func (s *Store) RecentRuns(phase Phase, limit int) ([]Run, error) {
	var runs []Run
	q := s.db.Order("started_at DESC").Limit(limit)
	if phase != "" {
		q = q.Where("phase = ?", string(phase))
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("telemetry: querying runs: %w", err)
	}
	return runs, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
