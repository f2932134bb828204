package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/models"
)

// stubEconomyRepo records which engine calls got through the service's
// authorization gate.
type stubEconomyRepo struct {
	calls      []string
	redemption *models.Redemption
	report     *models.HazardReport
}

func (s *stubEconomyRepo) CreateReportWithReward(report *models.HazardReport) error {
	s.calls = append(s.calls, "CreateReportWithReward")
	return nil
}

func (s *stubEconomyRepo) RedeemItem(userID uint, itemID uuid.UUID) (*models.Redemption, error) {
	s.calls = append(s.calls, "RedeemItem")
	return s.redemption, nil
}

func (s *stubEconomyRepo) TransitionRedemption(redemptionID uuid.UUID, newStatus string) (*models.Redemption, error) {
	s.calls = append(s.calls, "TransitionRedemption")
	r := *s.redemption
	r.Status = newStatus
	return &r, nil
}

func (s *stubEconomyRepo) TransitionHazardStatus(reportID uuid.UUID, newStatus string) (*models.HazardReport, error) {
	s.calls = append(s.calls, "TransitionHazardStatus")
	r := *s.report
	r.Status = newStatus
	return &r, nil
}

func (s *stubEconomyRepo) ToggleVote(userID uint, reportID uuid.UUID) (*models.VoteStateResponse, error) {
	s.calls = append(s.calls, "ToggleVote")
	return &models.VoteStateResponse{ReportID: reportID, Voted: true, VoteCount: 1}, nil
}

func (s *stubEconomyRepo) AddComment(comment *models.Comment) error {
	s.calls = append(s.calls, "AddComment")
	return nil
}

func (s *stubEconomyRepo) DeleteComment(commentID uint) error {
	s.calls = append(s.calls, "DeleteComment")
	return nil
}

func (s *stubEconomyRepo) GetCommentByID(commentID uint) (*models.Comment, error) {
	comment := &models.Comment{Body: "hi", UserID: 2}
	comment.ID = commentID
	return comment, nil
}

func (s *stubEconomyRepo) GetUserBalance(userID uint) (int, error) {
	return 42, nil
}

type stubNotifier struct {
	fulfilled     int
	statusChanged int
}

func (s *stubNotifier) RedemptionFulfilled(*models.Redemption)              { s.fulfilled++ }
func (s *stubNotifier) ReportStatusChanged(*models.HazardReport)            { s.statusChanged++ }
func (s *stubNotifier) RegisterDevice(uint, string) error                   { return nil }
func (s *stubNotifier) GetUserNotifications(uint) ([]models.Notification, error) { return nil, nil }
func (s *stubNotifier) MarkSeen(uint, uint) error                           { return nil }

func newTestEconomyService() (EconomyService, *stubEconomyRepo, *stubNotifier) {
	repo := &stubEconomyRepo{
		redemption: &models.Redemption{ID: uuid.New(), UserID: 2, Status: models.RedemptionPending},
		report:     &models.HazardReport{ID: uuid.New(), UserID: 2, Status: models.StatusActive},
	}
	notifier := &stubNotifier{}
	return NewEconomyService(repo, notifier, nil), repo, notifier
}

func TestTransitionRedemptionAuthorization(t *testing.T) {
	admin := &models.User{IsAdmin: true}
	admin.ID = 1
	user := &models.User{}
	user.ID = 2

	t.Run("non-admin is refused before the engine is touched", func(t *testing.T) {
		svc, repo, _ := newTestEconomyService()
		_, err := svc.TransitionRedemption(user, uuid.New(), models.RedemptionFulfilled)
		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.Empty(t, repo.calls)
	})

	t.Run("nil actor is refused", func(t *testing.T) {
		svc, repo, _ := newTestEconomyService()
		_, err := svc.TransitionRedemption(nil, uuid.New(), models.RedemptionFulfilled)
		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.Empty(t, repo.calls)
	})

	t.Run("fulfilment notifies the redeemer", func(t *testing.T) {
		svc, _, notifier := newTestEconomyService()
		redemption, err := svc.TransitionRedemption(admin, uuid.New(), models.RedemptionFulfilled)
		require.NoError(t, err)
		assert.Equal(t, models.RedemptionFulfilled, redemption.Status)
		assert.Equal(t, 1, notifier.fulfilled)
	})

	t.Run("cancellation does not notify", func(t *testing.T) {
		svc, _, notifier := newTestEconomyService()
		_, err := svc.TransitionRedemption(admin, uuid.New(), models.RedemptionCancelled)
		require.NoError(t, err)
		assert.Equal(t, 0, notifier.fulfilled)
	})
}

func TestTransitionHazardStatusAuthorization(t *testing.T) {
	admin := &models.User{IsAdmin: true}
	admin.ID = 1
	user := &models.User{}
	user.ID = 2

	t.Run("non-admin is refused", func(t *testing.T) {
		svc, repo, _ := newTestEconomyService()
		_, err := svc.TransitionHazardStatus(user, uuid.New(), models.StatusResolved)
		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.Empty(t, repo.calls)
	})

	t.Run("unknown status is refused before the engine", func(t *testing.T) {
		svc, repo, _ := newTestEconomyService()
		_, err := svc.TransitionHazardStatus(admin, uuid.New(), "archived")
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Empty(t, repo.calls)
	})

	t.Run("admin transition notifies the reporter", func(t *testing.T) {
		svc, _, notifier := newTestEconomyService()
		report, err := svc.TransitionHazardStatus(admin, uuid.New(), models.StatusInvestigating)
		require.NoError(t, err)
		assert.Equal(t, models.StatusInvestigating, report.Status)
		assert.Equal(t, 1, notifier.statusChanged)
	})
}

func TestDeleteCommentAuthorization(t *testing.T) {
	admin := &models.User{IsAdmin: true}
	admin.ID = 1
	owner := &models.User{}
	owner.ID = 2
	stranger := &models.User{}
	stranger.ID = 3

	t.Run("owner may delete", func(t *testing.T) {
		svc, repo, _ := newTestEconomyService()
		require.NoError(t, svc.DeleteComment(owner, 5))
		assert.Contains(t, repo.calls, "DeleteComment")
	})

	t.Run("admin may delete", func(t *testing.T) {
		svc, repo, _ := newTestEconomyService()
		require.NoError(t, svc.DeleteComment(admin, 5))
		assert.Contains(t, repo.calls, "DeleteComment")
	})

	t.Run("stranger may not", func(t *testing.T) {
		svc, repo, _ := newTestEconomyService()
		err := svc.DeleteComment(stranger, 5)
		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.NotContains(t, repo.calls, "DeleteComment")
	})
}

func TestAnonymousCallersAreRefused(t *testing.T) {
	svc, repo, _ := newTestEconomyService()

	_, err := svc.RedeemItem(nil, uuid.New())
	assert.ErrorIs(t, err, errs.ErrNotAuthorized)

	_, err = svc.ToggleVote(nil, uuid.New())
	assert.ErrorIs(t, err, errs.ErrNotAuthorized)

	_, err = svc.AddComment(nil, uuid.New(), "hi")
	assert.ErrorIs(t, err, errs.ErrNotAuthorized)

	assert.Empty(t, repo.calls)
}
