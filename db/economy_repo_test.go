package db

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/models"
)

// newEconomyMock wires the repository to a sqlmock connection. WithoutReturning
// keeps inserts on the Exec path so the mock can match them like any other
// statement.
func newEconomyMock(t *testing.T) (EconomyRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:             mockDB,
		WithoutReturning: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewEconomyRepo(&GormDB{DB: gormDB}), mock
}

func TestCreateReportWithReward(t *testing.T) {
	report := &models.HazardReport{
		ID:          uuid.New(),
		HazardType:  models.HazardPothole,
		Status:      models.StatusActive,
		TokenReward: models.DefaultTokenReward,
		UserID:      1,
	}

	t.Run("credits the reporter in the same transaction", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "hazard_reports"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "users" SET "token_balance"=token_balance \+ \$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateReportWithReward(report)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the reporter does not exist", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "hazard_reports"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "users" SET "token_balance"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.CreateReportWithReward(report)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the insert fails", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "hazard_reports"`).WillReturnError(errors.New("duplicate key"))
		mock.ExpectRollback()

		err := repo.CreateReportWithReward(report)
		assert.ErrorIs(t, err, errs.ErrStorage)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedeemItem(t *testing.T) {
	itemID := uuid.New()

	userRows := func(balance int) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "token_balance"}).AddRow(1, balance)
	}
	itemRows := func(cost int, available bool) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name", "token_cost", "available"}).
			AddRow(itemID.String(), "Bus pass (1 week)", cost, available)
	}

	t.Run("deducts the cost and opens a pending redemption", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(userRows(100))
		mock.ExpectQuery(`SELECT \* FROM "store_items" WHERE id = \$1`).
			WillReturnRows(itemRows(40, true))
		mock.ExpectExec(`UPDATE "users" SET "token_balance"=\$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "redemptions"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		redemption, err := repo.RedeemItem(1, itemID)
		require.NoError(t, err)
		assert.Equal(t, models.RedemptionPending, redemption.Status)
		assert.Equal(t, itemID, redemption.ItemID)
		assert.Equal(t, uint(1), redemption.UserID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refuses when the balance cannot cover the cost", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(userRows(10))
		mock.ExpectQuery(`SELECT \* FROM "store_items" WHERE id = \$1`).
			WillReturnRows(itemRows(40, true))
		mock.ExpectRollback()

		redemption, err := repo.RedeemItem(1, itemID)
		assert.Nil(t, redemption)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refuses an unavailable item", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(userRows(100))
		mock.ExpectQuery(`SELECT \* FROM "store_items" WHERE id = \$1`).
			WillReturnRows(itemRows(40, false))
		mock.ExpectRollback()

		_, err := repo.RedeemItem(1, itemID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refuses an unknown user", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "token_balance"}))
		mock.ExpectRollback()

		_, err := repo.RedeemItem(404, itemID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransitionRedemption(t *testing.T) {
	redemptionID := uuid.New()

	redemptionRows := func(status string) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "user_id", "status"}).
			AddRow(redemptionID.String(), 1, status)
	}

	t.Run("fulfils a pending redemption", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "redemptions" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(redemptionRows(models.RedemptionPending))
		mock.ExpectExec(`UPDATE "redemptions" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		redemption, err := repo.TransitionRedemption(redemptionID, models.RedemptionFulfilled)
		require.NoError(t, err)
		assert.Equal(t, models.RedemptionFulfilled, redemption.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cancels a pending redemption without touching the balance", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "redemptions" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(redemptionRows(models.RedemptionPending))
		mock.ExpectExec(`UPDATE "redemptions" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		redemption, err := repo.TransitionRedemption(redemptionID, models.RedemptionCancelled)
		require.NoError(t, err)
		assert.Equal(t, models.RedemptionCancelled, redemption.Status)
		// No UPDATE "users" was expected above; ExpectationsWereMet proves no
		// refund statement ran.
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects leaving a terminal state", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "redemptions" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(redemptionRows(models.RedemptionFulfilled))
		mock.ExpectRollback()

		_, err := repo.TransitionRedemption(redemptionID, models.RedemptionCancelled)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown redemption", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "redemptions" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "status"}))
		mock.ExpectRollback()

		_, err := repo.TransitionRedemption(redemptionID, models.RedemptionFulfilled)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransitionHazardStatus(t *testing.T) {
	reportID := uuid.New()

	reportRows := func(status string) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "status", "user_id"}).
			AddRow(reportID.String(), status, 1)
	}

	t.Run("active to investigating", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "hazard_reports" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(reportRows(models.StatusActive))
		mock.ExpectExec(`UPDATE "hazard_reports" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		report, err := repo.TransitionHazardStatus(reportID, models.StatusInvestigating)
		require.NoError(t, err)
		assert.Equal(t, models.StatusInvestigating, report.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("resolved is terminal", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "hazard_reports" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(reportRows(models.StatusResolved))
		mock.ExpectRollback()

		_, err := repo.TransitionHazardStatus(reportID, models.StatusActive)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestToggleVote(t *testing.T) {
	reportID := uuid.New()

	reportRows := func(voteCount int) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "status", "vote_count"}).
			AddRow(reportID.String(), models.StatusActive, voteCount)
	}

	t.Run("first toggle records a vote and bumps the counter", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "hazard_reports" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(reportRows(3))
		mock.ExpectQuery(`SELECT \* FROM "votes" WHERE report_id = \$1 AND user_id = \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectExec(`INSERT INTO "votes"`).WillReturnResult(sqlmock.NewResult(9, 1))
		mock.ExpectExec(`UPDATE "hazard_reports" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		state, err := repo.ToggleVote(1, reportID)
		require.NoError(t, err)
		assert.True(t, state.Voted)
		assert.Equal(t, 4, state.VoteCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second toggle removes the vote and drops the counter", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "hazard_reports" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(reportRows(3))
		mock.ExpectQuery(`SELECT \* FROM "votes" WHERE report_id = \$1 AND user_id = \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(9, 1))
		mock.ExpectExec(`DELETE FROM "votes"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "hazard_reports" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		state, err := repo.ToggleVote(1, reportID)
		require.NoError(t, err)
		assert.False(t, state.Voted)
		assert.Equal(t, 2, state.VoteCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("counter never goes below zero", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "hazard_reports" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(reportRows(0))
		mock.ExpectQuery(`SELECT \* FROM "votes" WHERE report_id = \$1 AND user_id = \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(9, 1))
		mock.ExpectExec(`DELETE FROM "votes"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "hazard_reports" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		state, err := repo.ToggleVote(1, reportID)
		require.NoError(t, err)
		assert.Equal(t, 0, state.VoteCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown report", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "hazard_reports" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := repo.ToggleVote(1, reportID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestComments(t *testing.T) {
	reportID := uuid.New()

	reportRows := func(commentCount int) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "status", "comment_count"}).
			AddRow(reportID.String(), models.StatusActive, commentCount)
	}

	t.Run("adding a comment bumps the counter", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "hazard_reports" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(reportRows(1))
		mock.ExpectExec(`INSERT INTO "comments"`).WillReturnResult(sqlmock.NewResult(5, 1))
		mock.ExpectExec(`UPDATE "hazard_reports" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		comment := &models.Comment{Body: "still flooded after rain", ReportID: reportID, UserID: 2}
		err := repo.AddComment(comment)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("comment on unknown report", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "hazard_reports" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := repo.AddComment(&models.Comment{Body: "hello", ReportID: reportID, UserID: 2})
		assert.ErrorIs(t, err, errs.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deleting a comment drops the counter", func(t *testing.T) {
		repo, mock := newEconomyMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "comments" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "report_id", "user_id"}).
				AddRow(5, reportID.String(), 2))
		mock.ExpectQuery(`SELECT \* FROM "hazard_reports" WHERE id = \$1 .*FOR UPDATE`).
			WillReturnRows(reportRows(2))
		mock.ExpectExec(`UPDATE "comments" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "hazard_reports" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteComment(5)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserBalance(t *testing.T) {
	repo, mock := newEconomyMock(t)

	mock.ExpectQuery(`SELECT "token_balance" FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"token_balance"}).AddRow(70))

	balance, err := repo.GetUserBalance(1)
	require.NoError(t, err)
	assert.Equal(t, 70, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
