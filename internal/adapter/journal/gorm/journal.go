package gormjournal

import (
	"context"
	"encoding/json"
	"fmt"

	"wayfarer/internal/adapter/journal/gorm/model"
	"wayfarer/internal/app/ports"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Journal persists decisions and summary copies in a local sqlite file.
// It is a cache and an audit trail; the server stays the source of truth.
type Journal struct {
	db *gorm.DB
}

func Open(path string) (*Journal, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.AutoMigrate(&model.Decision{}, &model.Summary{}); err != nil {
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) RecordDecision(ctx context.Context, rec ports.DecisionRecord) error {
	row := model.Decision{
		Turn:    rec.Turn,
		Tick:    rec.Tick,
		Kind:    rec.Kind,
		Detail:  rec.Detail,
		Outcome: rec.Outcome,
		X:       rec.X,
		Y:       rec.Y,
	}
	return j.db.WithContext(ctx).Create(&row).Error
}

func (j *Journal) CacheSummary(ctx context.Context, summary ports.StoredSummary) error {
	topics, _ := json.Marshal(summary.Topics)
	row := model.Summary{
		PeerID:    summary.PeerID,
		Title:     summary.Title,
		Body:      summary.Body,
		Topics:    topics,
		CreatedAt: summary.CreatedAt,
	}
	return j.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

func (j *Journal) CachedSummaries(ctx context.Context) ([]ports.StoredSummary, error) {
	rows := []model.Summary{}
	err := j.db.WithContext(ctx).Order("created_at asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.StoredSummary, 0, len(rows))
	for _, row := range rows {
		var topics []string
		if len(row.Topics) > 0 {
			_ = json.Unmarshal(row.Topics, &topics)
		}
		out = append(out, ports.StoredSummary{
			PeerID:    row.PeerID,
			Title:     row.Title,
			Body:      row.Body,
			Topics:    topics,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
