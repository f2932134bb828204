package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techagentng/hazardx/models"
)

type stubClassifier struct {
	label      string
	confidence float64
	err        error
}

func (s *stubClassifier) ClassifyImage(ctx context.Context, imageURL string) (string, float64, error) {
	return s.label, s.confidence, s.err
}

func TestCreateReport(t *testing.T) {
	user := &models.User{}
	user.ID = 7

	t.Run("classifier fills a blank hazard type", func(t *testing.T) {
		repo := &stubEconomyRepo{}
		svc := NewReportService(nil, repo, &stubClassifier{label: models.HazardWaterlogging, confidence: 0.9}, nil)

		report, err := svc.CreateReport(user, &models.CreateReportRequest{
			Latitude:  6.45,
			Longitude: 3.39,
		}, "https://img.example/full.jpg", "https://img.example/thumb.jpg")
		require.NoError(t, err)
		assert.Equal(t, models.HazardWaterlogging, report.HazardType)
		assert.Equal(t, models.StatusActive, report.Status)
		assert.Equal(t, models.DefaultTokenReward, report.TokenReward)
		assert.Equal(t, uint(7), report.UserID)
		assert.Contains(t, repo.calls, "CreateReportWithReward")
	})

	t.Run("classifier failure degrades to other", func(t *testing.T) {
		repo := &stubEconomyRepo{}
		svc := NewReportService(nil, repo, &stubClassifier{err: errors.New("timeout")}, nil)

		report, err := svc.CreateReport(user, &models.CreateReportRequest{
			Latitude:  6.45,
			Longitude: 3.39,
		}, "https://img.example/full.jpg", "")
		require.NoError(t, err)
		assert.Equal(t, models.HazardOther, report.HazardType)
	})

	t.Run("explicit hazard type wins over the classifier", func(t *testing.T) {
		repo := &stubEconomyRepo{}
		svc := NewReportService(nil, repo, &stubClassifier{label: models.HazardWaterlogging}, nil)

		report, err := svc.CreateReport(user, &models.CreateReportRequest{
			HazardType: models.HazardPothole,
			Latitude:   6.45,
			Longitude:  3.39,
		}, "https://img.example/full.jpg", "")
		require.NoError(t, err)
		assert.Equal(t, models.HazardPothole, report.HazardType)
	})

	t.Run("no image and no type lands as other", func(t *testing.T) {
		repo := &stubEconomyRepo{}
		svc := NewReportService(nil, repo, &stubClassifier{label: models.HazardPothole}, nil)

		report, err := svc.CreateReport(user, &models.CreateReportRequest{
			Latitude:  6.45,
			Longitude: 3.39,
		}, "", "")
		require.NoError(t, err)
		assert.Equal(t, models.HazardOther, report.HazardType)
	})
}
