package postgres

import (
	"context"

	"github.com/lib/pq"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.MediaStore = (*MediaStore)(nil)

// MediaStore implements driven.MediaStore using PostgreSQL
type MediaStore struct {
	db *DB
}

// NewMediaStore creates a new MediaStore
func NewMediaStore(db *DB) *MediaStore {
	return &MediaStore{db: db}
}

// ListVideos returns every training video
func (s *MediaStore) ListVideos(ctx context.Context) ([]*domain.TrainingVideo, error) {
	query := `
		SELECT id, title, description, keywords, platform, url, created_at
		FROM training_videos
		ORDER BY title, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []*domain.TrainingVideo
	for rows.Next() {
		var v domain.TrainingVideo
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, pq.Array(&v.Keywords), &v.Platform, &v.URL, &v.CreatedAt); err != nil {
			return nil, err
		}
		videos = append(videos, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return videos, nil
}

// ListPresentations returns every training presentation
func (s *MediaStore) ListPresentations(ctx context.Context) ([]*domain.TrainingPresentation, error) {
	query := `
		SELECT id, title, description, keywords, mime_type, file_name, created_at
		FROM training_presentations
		ORDER BY title, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presentations []*domain.TrainingPresentation
	for rows.Next() {
		var p domain.TrainingPresentation
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, pq.Array(&p.Keywords), &p.MimeType, &p.FileName, &p.CreatedAt); err != nil {
			return nil, err
		}
		presentations = append(presentations, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return presentations, nil
}
