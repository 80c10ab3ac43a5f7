package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"brand-voice-studio/internal/models"
)

type abTestRow struct {
	ID                string     `db:"id"`
	Name              string     `db:"name"`
	ContentType       string     `db:"content_type"`
	Platform          string     `db:"platform"`
	Status            string     `db:"status"`
	StartDate         *time.Time `db:"start_date"`
	EndDate           *time.Time `db:"end_date"`
	WinnerVariationID *string    `db:"winner_variation_id"`
	ConfidenceLevel   *float64   `db:"confidence_level"`
	CreatedAt         time.Time  `db:"created_at"`
}

type variationRow struct {
	TestID         string    `db:"test_id"`
	ID             string    `db:"id"`
	Position       int       `db:"position"`
	Content        string    `db:"content"`
	Hashtags       string    `db:"hashtags"`
	ImagePrompt    *string   `db:"image_prompt"`
	PostID         *string   `db:"post_id"`
	EngagementData *string   `db:"engagement_data"`
	CreatedAt      time.Time `db:"created_at"`
}

const (
	abTestColumns    = `id, name, content_type, platform, status, start_date, end_date, winner_variation_id, confidence_level, created_at`
	variationColumns = `test_id, id, position, content, hashtags, image_prompt, post_id, engagement_data, created_at`
)

// CreateABTest stores a test and its variations in one transaction
func (d *DB) CreateABTest(test *models.ABTest) error {
	return d.WithLock(func() error {
		return d.withTx(func(tx *sqlx.Tx) error {
			_, err := tx.Exec(
				tx.Rebind(`INSERT INTO ab_tests (`+abTestColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
				test.ID, test.Name, test.ContentType, test.Platform, string(test.Status),
				test.StartDate, test.EndDate, test.WinnerVariationID, test.ConfidenceLevel, test.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert test: %w", err)
			}

			for i, v := range test.Variations {
				row, err := toVariationRow(test.ID, i, v)
				if err != nil {
					return err
				}
				_, err = tx.Exec(
					tx.Rebind(`INSERT INTO ab_test_variations (`+variationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
					row.TestID, row.ID, row.Position, row.Content, row.Hashtags,
					row.ImagePrompt, row.PostID, row.EngagementData, row.CreatedAt,
				)
				if err != nil {
					return fmt.Errorf("failed to insert variation %s: %w", v.ID, err)
				}
			}
			return nil
		})
	})
}

// GetABTest retrieves a test with its variations. Returns sql.ErrNoRows when missing.
func (d *DB) GetABTest(id string) (*models.ABTest, error) {
	return WithLockResult(d, func() (*models.ABTest, error) {
		var row abTestRow
		if err := d.db.Get(&row, d.q(`SELECT `+abTestColumns+` FROM ab_tests WHERE id = ?`), id); err != nil {
			return nil, err
		}

		var vrows []variationRow
		err := d.db.Select(&vrows, d.q(`SELECT `+variationColumns+` FROM ab_test_variations WHERE test_id = ? ORDER BY position`), id)
		if err != nil {
			return nil, err
		}

		return fromRows(row, vrows)
	})
}

// ListABTests returns all tests, newest first
func (d *DB) ListABTests() ([]models.ABTest, error) {
	return WithLockResult(d, func() ([]models.ABTest, error) {
		var rows []abTestRow
		if err := d.db.Select(&rows, `SELECT `+abTestColumns+` FROM ab_tests ORDER BY created_at DESC`); err != nil {
			return nil, err
		}

		var vrows []variationRow
		if err := d.db.Select(&vrows, `SELECT `+variationColumns+` FROM ab_test_variations ORDER BY test_id, position`); err != nil {
			return nil, err
		}
		byTest := make(map[string][]variationRow)
		for _, v := range vrows {
			byTest[v.TestID] = append(byTest[v.TestID], v)
		}

		tests := make([]models.ABTest, 0, len(rows))
		for _, row := range rows {
			test, err := fromRows(row, byTest[row.ID])
			if err != nil {
				return nil, err
			}
			tests = append(tests, *test)
		}
		return tests, nil
	})
}

// UpdateABTest persists status and analysis results. Variation rows are
// left alone; see UpdateVariationPerformance. Returns sql.ErrNoRows when missing.
func (d *DB) UpdateABTest(test *models.ABTest) error {
	return d.WithLock(func() error {
		res, err := d.db.Exec(
			d.q(`UPDATE ab_tests SET status = ?, start_date = ?, end_date = ?, winner_variation_id = ?, confidence_level = ? WHERE id = ?`),
			string(test.Status), test.StartDate, test.EndDate, test.WinnerVariationID, test.ConfidenceLevel, test.ID,
		)
		if err != nil {
			return err
		}
		return expectAffected(res)
	})
}

// UpdateVariationPerformance writes the post id and engagement of a single
// variation. Returns sql.ErrNoRows when the test or variation is missing.
func (d *DB) UpdateVariationPerformance(testID string, v *models.ABTestVariation) error {
	row, err := toVariationRow(testID, 0, *v)
	if err != nil {
		return err
	}
	return d.WithLock(func() error {
		res, err := d.db.Exec(
			d.q(`UPDATE ab_test_variations SET post_id = ?, engagement_data = ? WHERE test_id = ? AND id = ?`),
			row.PostID, row.EngagementData, testID, v.ID,
		)
		if err != nil {
			return err
		}
		return expectAffected(res)
	})
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteABTest deletes a test and its variations. Returns sql.ErrNoRows when missing.
func (d *DB) DeleteABTest(id string) error {
	return d.WithLock(func() error {
		return d.withTx(func(tx *sqlx.Tx) error {
			if _, err := tx.Exec(tx.Rebind(`DELETE FROM ab_test_variations WHERE test_id = ?`), id); err != nil {
				return err
			}
			res, err := tx.Exec(tx.Rebind(`DELETE FROM ab_tests WHERE id = ?`), id)
			if err != nil {
				return err
			}
			return expectAffected(res)
		})
	})
}

func toVariationRow(testID string, position int, v models.ABTestVariation) (variationRow, error) {
	hashtags := v.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	tags, err := json.Marshal(hashtags)
	if err != nil {
		return variationRow{}, fmt.Errorf("failed to encode hashtags: %w", err)
	}

	row := variationRow{
		TestID:    testID,
		ID:        v.ID,
		Position:  position,
		Content:   v.Content,
		Hashtags:  string(tags),
		CreatedAt: v.CreatedAt,
	}
	if v.ImagePrompt != "" {
		row.ImagePrompt = &v.ImagePrompt
	}
	if v.PostID != "" {
		row.PostID = &v.PostID
	}
	if v.EngagementData != nil {
		data, err := json.Marshal(v.EngagementData)
		if err != nil {
			return variationRow{}, fmt.Errorf("failed to encode engagement data: %w", err)
		}
		s := string(data)
		row.EngagementData = &s
	}
	return row, nil
}

func fromRows(row abTestRow, vrows []variationRow) (*models.ABTest, error) {
	test := &models.ABTest{
		ID:                row.ID,
		Name:              row.Name,
		ContentType:       row.ContentType,
		Platform:          row.Platform,
		Status:            models.TestStatus(row.Status),
		StartDate:         row.StartDate,
		EndDate:           row.EndDate,
		WinnerVariationID: row.WinnerVariationID,
		ConfidenceLevel:   row.ConfidenceLevel,
		CreatedAt:         row.CreatedAt,
		Variations:        make([]models.ABTestVariation, 0, len(vrows)),
	}

	for _, vr := range vrows {
		v := models.ABTestVariation{
			ID:        vr.ID,
			Content:   vr.Content,
			CreatedAt: vr.CreatedAt,
		}
		if err := json.Unmarshal([]byte(vr.Hashtags), &v.Hashtags); err != nil {
			return nil, fmt.Errorf("failed to decode hashtags of %s: %w", vr.ID, err)
		}
		if vr.ImagePrompt != nil {
			v.ImagePrompt = *vr.ImagePrompt
		}
		if vr.PostID != nil {
			v.PostID = *vr.PostID
		}
		if vr.EngagementData != nil {
			var data models.EngagementData
			if err := json.Unmarshal([]byte(*vr.EngagementData), &data); err != nil {
				return nil, fmt.Errorf("failed to decode engagement data of %s: %w", vr.ID, err)
			}
			v.EngagementData = &data
		}
		test.Variations = append(test.Variations, v)
	}
	return test, nil
}
