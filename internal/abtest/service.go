package abtest

import (
	"cmp"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"brand-voice-studio/internal/apperr"
	"brand-voice-studio/internal/logging"
	"brand-voice-studio/internal/models"
)

// Store persists tests. Lookups of unknown ids return sql.ErrNoRows.
type Store interface {
	CreateABTest(test *models.ABTest) error
	GetABTest(id string) (*models.ABTest, error)
	ListABTests() ([]models.ABTest, error)
	UpdateABTest(test *models.ABTest) error
	UpdateVariationPerformance(testID string, v *models.ABTestVariation) error
	DeleteABTest(id string) error
}

// TransitionRecorder observes status changes
type TransitionRecorder interface {
	RecordTransition(status string)
}

// Option configures a Service
type Option func(*Service)

// WithEngine replaces the variation engine
func WithEngine(e *Engine) Option {
	return func(s *Service) {
		s.engine = e
	}
}

// WithClock sets the time source for start and end dates
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Service) {
		s.log = logging.Component(logger, "abtest")
	}
}

// WithRecorder sets a transition observer
func WithRecorder(r TransitionRecorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// Service manages the test lifecycle: draft, running, completed
type Service struct {
	store Store
	// serializes status transitions so a check and its write see the same state
	statusMu sync.Mutex
	engineMu sync.Mutex
	engine   *Engine
	now      func() time.Time
	log      *logrus.Entry
	recorder TransitionRecorder
}

// NewService creates a service backed by store
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		log:   logging.Component(nil, "abtest"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = NewEngine(nil, s.now)
	}
	return s
}

// CreateRequest describes a new test
type CreateRequest struct {
	Name           string
	Base           BaseContent
	VariationTypes []string
	Platform       string
}

// Create builds variations and stores a new draft test
func (s *Service) Create(req CreateRequest) (*models.ABTest, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("test name is required")
	}

	types := req.VariationTypes
	if len(types) == 0 {
		types = DefaultVariationTypes
	}

	s.engineMu.Lock()
	variations, err := s.engine.Variations(req.Base, types)
	s.engineMu.Unlock()
	if err != nil {
		return nil, err
	}

	test := &models.ABTest{
		ID:          uuid.NewString(),
		Name:        req.Name,
		ContentType: cmp.Or(req.Base.ContentType, "general"),
		Platform:    cmp.Or(req.Platform, models.PlatformInstagram),
		Status:      models.TestStatusDraft,
		Variations:  variations,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.CreateABTest(test); err != nil {
		return nil, apperr.Wrap(err, "failed to save test")
	}

	s.transitioned(test)
	s.log.WithFields(logrus.Fields{
		"test_id":    test.ID,
		"variations": len(test.Variations),
	}).Info("A/B test created")
	return test, nil
}

// Start moves a draft or paused test to running
func (s *Service) Start(id string) (*models.ABTest, error) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()

	test, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if test.Status != models.TestStatusDraft && test.Status != models.TestStatusPaused {
		return nil, apperr.Validation("test %s is already %s", id, test.Status)
	}

	now := s.now().UTC()
	test.Status = models.TestStatusRunning
	test.StartDate = &now
	if err := s.save(test); err != nil {
		return nil, err
	}
	s.transitioned(test)
	return test, nil
}

// PerformanceUpdate attaches reported engagement to a variation
type PerformanceUpdate struct {
	TestID         string
	VariationID    string
	PostID         string
	EngagementData *models.EngagementData
}

// UpdatePerformance records the published post and its engagement. Only the
// targeted variation is written, so updates to different variations of one
// test do not overwrite each other.
func (s *Service) UpdatePerformance(u PerformanceUpdate) (*models.ABTest, error) {
	if u.TestID == "" || u.VariationID == "" || u.PostID == "" || u.EngagementData == nil {
		return nil, apperr.Validation("test_id, variation_id, post_id and engagement_data are required")
	}
	if err := validateEngagement(u.EngagementData); err != nil {
		return nil, err
	}
	test, err := s.load(u.TestID)
	if err != nil {
		return nil, err
	}
	v, ok := test.Variation(u.VariationID)
	if !ok {
		return nil, apperr.NotFound("variation " + u.VariationID)
	}
	v.PostID = u.PostID
	data := *u.EngagementData
	v.EngagementData = &data

	if err := s.store.UpdateVariationPerformance(test.ID, v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("variation " + u.VariationID)
		}
		return nil, apperr.Wrap(err, "failed to save engagement")
	}
	return test, nil
}

func validateEngagement(d *models.EngagementData) error {
	counts := []struct {
		name  string
		value int
	}{
		{"likes", d.Likes},
		{"comments", d.Comments},
		{"shares", d.Shares},
		{"saves", d.Saves},
		{"reach", d.Reach},
		{"impressions", d.Impressions},
	}
	for _, c := range counts {
		if c.value < 0 {
			return apperr.Validation("engagement_data.%s must not be negative, got %d", c.name, c.value)
		}
	}
	return nil
}

// Analyze scores the variations, stores the winner and completes the test
// when the confidence exceeds CompletionConfidence.
func (s *Service) Analyze(id string) (*Results, error) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()

	test, err := s.load(id)
	if err != nil {
		return nil, err
	}
	scores, err := Score(test)
	if err != nil {
		return nil, err
	}

	confidence := Confidence(scores[0].EngagementScore, scores[1].EngagementScore)
	winner := scores[0].VariationID
	test.WinnerVariationID = &winner
	test.ConfidenceLevel = &confidence

	completed := false
	if confidence > CompletionConfidence && test.Status != models.TestStatusCompleted {
		now := s.now().UTC()
		test.Status = models.TestStatusCompleted
		test.EndDate = &now
		completed = true
	}
	if err := s.save(test); err != nil {
		return nil, err
	}
	if completed {
		s.transitioned(test)
	}

	return &Results{
		TestID:          test.ID,
		Status:          test.Status,
		Winner:          scores[0],
		AllResults:      scores,
		ConfidenceLevel: confidence,
		Recommendations: Recommendations(scores),
	}, nil
}

// Get returns a test with its variations
func (s *Service) Get(id string) (*models.ABTest, error) {
	return s.load(id)
}

// Summary is the compact view of a test
type Summary struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Status            models.TestStatus `json:"status"`
	Platform          string            `json:"platform"`
	VariationCount    int               `json:"variation_count"`
	StartDate         *time.Time        `json:"start_date"`
	EndDate           *time.Time        `json:"end_date"`
	WinnerVariationID *string           `json:"winner_variation_id"`
	ConfidenceLevel   *float64          `json:"confidence_level"`
}

// Summarize builds the compact view of test
func Summarize(test *models.ABTest) Summary {
	return Summary{
		ID:                test.ID,
		Name:              test.Name,
		Status:            test.Status,
		Platform:          test.Platform,
		VariationCount:    len(test.Variations),
		StartDate:         test.StartDate,
		EndDate:           test.EndDate,
		WinnerVariationID: test.WinnerVariationID,
		ConfidenceLevel:   test.ConfidenceLevel,
	}
}

// Overview splits tests into active and completed
type Overview struct {
	ActiveTests    []Summary `json:"active_tests"`
	CompletedTests []Summary `json:"completed_tests"`
}

// List returns all tests, newest first
func (s *Service) List() (Overview, error) {
	tests, err := s.store.ListABTests()
	if err != nil {
		return Overview{}, apperr.Wrap(err, "failed to list tests")
	}
	o := Overview{ActiveTests: []Summary{}, CompletedTests: []Summary{}}
	for i := range tests {
		sum := Summarize(&tests[i])
		if tests[i].Status == models.TestStatusCompleted {
			o.CompletedTests = append(o.CompletedTests, sum)
		} else {
			o.ActiveTests = append(o.ActiveTests, sum)
		}
	}
	return o, nil
}

// Delete removes a test in any state
func (s *Service) Delete(id string) error {
	if err := s.store.DeleteABTest(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("test " + id)
		}
		return apperr.Wrap(err, "failed to delete test")
	}
	s.log.WithField("test_id", id).Info("A/B test deleted")
	return nil
}

// ManualGuide explains how to run a test by hand until engagement is recorded
type ManualGuide struct {
	TestID       string   `json:"test_id"`
	Message      string   `json:"message"`
	Instructions []string `json:"instructions"`
	Variations   []string `json:"variations"`
}

// ManualTestingGuide returns instructions for collecting engagement on test
func ManualTestingGuide(test *models.ABTest) ManualGuide {
	ids := make([]string, 0, len(test.Variations))
	for _, v := range test.Variations {
		ids = append(ids, v.ID)
	}
	return ManualGuide{
		TestID:  test.ID,
		Message: "Not enough engagement data yet. Run this test manually and record the results.",
		Instructions: []string{
			"Publish each variation at a similar time of day on " + test.Platform + ".",
			"Wait at least 48 hours so each post reaches its audience.",
			"Record likes, comments, shares, saves and reach for each post.",
			"Submit the numbers with update-performance, then analyze again.",
		},
		Variations: ids,
	}
}

func (s *Service) load(id string) (*models.ABTest, error) {
	test, err := s.store.GetABTest(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("test " + id)
		}
		return nil, apperr.Wrap(err, "failed to load test")
	}
	return test, nil
}

func (s *Service) save(test *models.ABTest) error {
	if err := s.store.UpdateABTest(test); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("test " + test.ID)
		}
		return apperr.Wrap(err, "failed to save test")
	}
	return nil
}

func (s *Service) transitioned(test *models.ABTest) {
	if s.recorder != nil {
		s.recorder.RecordTransition(string(test.Status))
	}
	s.log.WithFields(logrus.Fields{
		"test_id": test.ID,
		"status":  test.Status,
	}).Debug("A/B test status changed")
}
