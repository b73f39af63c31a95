package database

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// GeneratorRun records one completed generator invocation. The counts column
// stores the per-platform tallies as JSON so the schema does not need a
// migration every time a platform is added.
type GeneratorRun struct {
	ID         uint      `gorm:"primaryKey"`
	StartedAt  time.Time `gorm:"index"`
	FinishedAt time.Time
	Total      int
	Counts     string
}

// RecordRun persists a finished run with its per-platform counts.
func RecordRun(db *gorm.DB, started, finished time.Time, total int, counts map[string]int) error {
	raw, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	run := GeneratorRun{
		StartedAt:  started,
		FinishedAt: finished,
		Total:      total,
		Counts:     string(raw),
	}
	return db.Create(&run).Error
}

// LastRun returns the most recent recorded run, or nil when none exist.
func LastRun(db *gorm.DB) (*GeneratorRun, error) {
	var run GeneratorRun
	err := db.Order("started_at desc").First(&run).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}
