package db

import (
	"time"

	"brand-voice-studio/internal/models"
)

const sampleColumns = `id, user_id, content, image_url, post_type, created_at`

// CreateTrainingSample inserts a new training sample
func (d *DB) CreateTrainingSample(userID, content string, imageURL *string, postType string) (*models.TrainingSample, error) {
	return WithLockResult(d, func() (*models.TrainingSample, error) {
		createdAt := time.Now().UTC()

		var id int64
		err := d.db.QueryRowx(
			d.q(`INSERT INTO training_data (user_id, content, image_url, post_type, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`),
			userID, content, imageURL, postType, createdAt,
		).Scan(&id)
		if err != nil {
			return nil, err
		}

		return &models.TrainingSample{
			ID:        id,
			UserID:    userID,
			Content:   content,
			ImageURL:  imageURL,
			PostType:  postType,
			CreatedAt: createdAt,
		}, nil
	})
}

// GetTrainingSample retrieves a sample by ID
func (d *DB) GetTrainingSample(id int64) (*models.TrainingSample, error) {
	return WithLockResult(d, func() (*models.TrainingSample, error) {
		var sample models.TrainingSample
		err := d.db.Get(&sample, d.q(`SELECT `+sampleColumns+` FROM training_data WHERE id = ?`), id)
		if err != nil {
			return nil, err
		}
		return &sample, nil
	})
}

// ListTrainingSamples returns a user's samples, newest first. An empty postType
// matches every type; limit <= 0 means no limit.
func (d *DB) ListTrainingSamples(userID, postType string, limit int) ([]models.TrainingSample, error) {
	return WithLockResult(d, func() ([]models.TrainingSample, error) {
		query := `SELECT ` + sampleColumns + ` FROM training_data WHERE user_id = ?`
		args := []any{userID}
		if postType != "" {
			query += ` AND post_type = ?`
			args = append(args, postType)
		}
		query += ` ORDER BY created_at DESC, id DESC`
		if limit > 0 {
			query += ` LIMIT ?`
			args = append(args, limit)
		}

		samples := []models.TrainingSample{}
		if err := d.db.Select(&samples, d.q(query), args...); err != nil {
			return nil, err
		}
		return samples, nil
	})
}

// CountTrainingSamplesByType returns the number of samples per post type for a user
func (d *DB) CountTrainingSamplesByType(userID string) (map[string]int, error) {
	return WithLockResult(d, func() (map[string]int, error) {
		rows, err := d.db.Queryx(
			d.q(`SELECT post_type, COUNT(*) FROM training_data WHERE user_id = ? GROUP BY post_type`),
			userID,
		)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		counts := make(map[string]int)
		for rows.Next() {
			var postType string
			var count int
			if err := rows.Scan(&postType, &count); err != nil {
				return nil, err
			}
			counts[postType] = count
		}
		return counts, rows.Err()
	})
}
