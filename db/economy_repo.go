package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/models"
)

// EconomyRepository is the token economy engine: every method is a single
// database transaction that either fully applies or fully rolls back. Balance
// and counter rows are locked FOR UPDATE before they are read, so concurrent
// calls serialize on the contested row instead of interleaving. Lock ordering is
// always the balance/report row first, then the dependent ledger row.
type EconomyRepository interface {
	CreateReportWithReward(report *models.HazardReport) error
	RedeemItem(userID uint, itemID uuid.UUID) (*models.Redemption, error)
	TransitionRedemption(redemptionID uuid.UUID, newStatus string) (*models.Redemption, error)
	TransitionHazardStatus(reportID uuid.UUID, newStatus string) (*models.HazardReport, error)
	ToggleVote(userID uint, reportID uuid.UUID) (*models.VoteStateResponse, error)
	AddComment(comment *models.Comment) error
	DeleteComment(commentID uint) error
	GetCommentByID(commentID uint) (*models.Comment, error)
	GetUserBalance(userID uint) (int, error)
}

type economyRepo struct {
	DB *gorm.DB
}

func NewEconomyRepo(db *GormDB) EconomyRepository {
	return &economyRepo{db.DB}
}

// storageErr keeps the engine error taxonomy intact: callers can still match
// errs.ErrStorage with errors.Is while the underlying cause stays in the message.
func storageErr(err error) error {
	return errors.WithMessage(errs.ErrStorage, err.Error())
}

// CreateReportWithReward inserts the report row and credits the reporter's
// balance in one transaction. The reward is fixed on the report at creation and
// credited exactly once; if either write fails, neither persists.
func (r *economyRepo) CreateReportWithReward(report *models.HazardReport) error {
	tx := r.DB.Begin()
	if tx.Error != nil {
		return storageErr(tx.Error)
	}

	if err := tx.Create(report).Error; err != nil {
		tx.Rollback()
		return storageErr(err)
	}

	res := tx.Model(&models.User{}).
		Where("id = ?", report.UserID).
		UpdateColumn("token_balance", gorm.Expr("token_balance + ?", report.TokenReward))
	if res.Error != nil {
		tx.Rollback()
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return errs.ErrNotFound
	}

	if err := tx.Commit().Error; err != nil {
		return storageErr(err)
	}
	return nil
}

// RedeemItem deducts the item cost from the user's balance and opens a pending
// redemption. The balance row is locked FOR UPDATE before the sufficiency check,
// so two concurrent redemptions against a balance good for one resolve to
// exactly one success and one ErrInsufficientBalance.
func (r *economyRepo) RedeemItem(userID uint, itemID uuid.UUID) (*models.Redemption, error) {
	tx := r.DB.Begin()
	if tx.Error != nil {
		return nil, storageErr(tx.Error)
	}

	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, "id = ?", userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, storageErr(err)
	}

	var item models.StoreItem
	if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, storageErr(err)
	}
	if !item.Available {
		tx.Rollback()
		return nil, errs.ErrNotFound
	}

	if user.TokenBalance < item.TokenCost {
		tx.Rollback()
		return nil, errs.ErrInsufficientBalance
	}

	if err := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("token_balance", user.TokenBalance-item.TokenCost).Error; err != nil {
		tx.Rollback()
		return nil, storageErr(err)
	}

	redemption := models.Redemption{
		ID:     uuid.New(),
		UserID: userID,
		ItemID: item.ID,
		Status: models.RedemptionPending,
	}
	if err := tx.Create(&redemption).Error; err != nil {
		tx.Rollback()
		return nil, storageErr(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, storageErr(err)
	}
	redemption.Item = item
	return &redemption, nil
}

// TransitionRedemption applies pending->fulfilled or pending->cancelled. A
// fulfilled redemption gets a fulfillment timestamp. Cancelling does not refund
// the deducted tokens; see the Redemption model doc.
func (r *economyRepo) TransitionRedemption(redemptionID uuid.UUID, newStatus string) (*models.Redemption, error) {
	tx := r.DB.Begin()
	if tx.Error != nil {
		return nil, storageErr(tx.Error)
	}

	var redemption models.Redemption
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&redemption, "id = ?", redemptionID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, storageErr(err)
	}

	if !models.CanTransitionRedemption(redemption.Status, newStatus) {
		tx.Rollback()
		return nil, errs.ErrInvalidTransition
	}

	updates := map[string]interface{}{"status": newStatus}
	if newStatus == models.RedemptionFulfilled {
		updates["fulfilled_at"] = gorm.Expr("NOW()")
	}
	if err := tx.Model(&models.Redemption{}).
		Where("id = ?", redemptionID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, storageErr(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, storageErr(err)
	}

	redemption.Status = newStatus
	return &redemption, nil
}

// TransitionHazardStatus moves a report forward through its lifecycle. Backward
// transitions and transitions out of resolved fail with ErrInvalidTransition.
func (r *economyRepo) TransitionHazardStatus(reportID uuid.UUID, newStatus string) (*models.HazardReport, error) {
	tx := r.DB.Begin()
	if tx.Error != nil {
		return nil, storageErr(tx.Error)
	}

	var report models.HazardReport
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&report, "id = ?", reportID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, storageErr(err)
	}

	if !models.CanTransitionStatus(report.Status, newStatus) {
		tx.Rollback()
		return nil, errs.ErrInvalidTransition
	}

	if err := tx.Model(&models.HazardReport{}).
		Where("id = ?", reportID).
		Update("status", newStatus).Error; err != nil {
		tx.Rollback()
		return nil, storageErr(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, storageErr(err)
	}

	report.Status = newStatus
	return &report, nil
}

// ToggleVote flips the (user, report) vote row and keeps the denormalized
// counter equal to the row count. The report row is locked first so the
// existence check, the insert/delete and the counter write cannot interleave
// with a concurrent toggle on the same report.
func (r *economyRepo) ToggleVote(userID uint, reportID uuid.UUID) (*models.VoteStateResponse, error) {
	tx := r.DB.Begin()
	if tx.Error != nil {
		return nil, storageErr(tx.Error)
	}

	var report models.HazardReport
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&report, "id = ?", reportID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, storageErr(err)
	}

	voted := false
	newCount := report.VoteCount

	var existing models.Vote
	err := tx.Where("report_id = ? AND user_id = ?", reportID, userID).First(&existing).Error
	switch {
	case err == nil:
		if err := tx.Delete(&models.Vote{}, existing.ID).Error; err != nil {
			tx.Rollback()
			return nil, storageErr(err)
		}
		newCount = models.SaturatingSub(report.VoteCount, 1)
	case errors.Is(err, gorm.ErrRecordNotFound):
		vote := models.Vote{ReportID: reportID, UserID: userID}
		if err := tx.Create(&vote).Error; err != nil {
			tx.Rollback()
			return nil, storageErr(err)
		}
		voted = true
		newCount = report.VoteCount + 1
	default:
		tx.Rollback()
		return nil, storageErr(err)
	}

	if err := tx.Model(&models.HazardReport{}).
		Where("id = ?", reportID).
		Update("vote_count", newCount).Error; err != nil {
		tx.Rollback()
		return nil, storageErr(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, storageErr(err)
	}

	return &models.VoteStateResponse{ReportID: reportID, Voted: voted, VoteCount: newCount}, nil
}

// AddComment inserts the comment and bumps the report's comment counter in the
// same transaction.
func (r *economyRepo) AddComment(comment *models.Comment) error {
	tx := r.DB.Begin()
	if tx.Error != nil {
		return storageErr(tx.Error)
	}

	var report models.HazardReport
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&report, "id = ?", comment.ReportID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		return storageErr(err)
	}

	if err := tx.Create(comment).Error; err != nil {
		tx.Rollback()
		return storageErr(err)
	}

	if err := tx.Model(&models.HazardReport{}).
		Where("id = ?", comment.ReportID).
		Update("comment_count", report.CommentCount+1).Error; err != nil {
		tx.Rollback()
		return storageErr(err)
	}

	if err := tx.Commit().Error; err != nil {
		return storageErr(err)
	}
	return nil
}

// DeleteComment removes the comment and decrements the counter, clamped at zero.
func (r *economyRepo) DeleteComment(commentID uint) error {
	tx := r.DB.Begin()
	if tx.Error != nil {
		return storageErr(tx.Error)
	}

	var comment models.Comment
	if err := tx.First(&comment, "id = ?", commentID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		return storageErr(err)
	}

	var report models.HazardReport
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&report, "id = ?", comment.ReportID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		return storageErr(err)
	}

	if err := tx.Delete(&models.Comment{}, comment.ID).Error; err != nil {
		tx.Rollback()
		return storageErr(err)
	}

	if err := tx.Model(&models.HazardReport{}).
		Where("id = ?", comment.ReportID).
		Update("comment_count", models.SaturatingSub(report.CommentCount, 1)).Error; err != nil {
		tx.Rollback()
		return storageErr(err)
	}

	if err := tx.Commit().Error; err != nil {
		return storageErr(err)
	}
	return nil
}

func (r *economyRepo) GetCommentByID(commentID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, storageErr(err)
	}
	return &comment, nil
}

func (r *economyRepo) GetUserBalance(userID uint) (int, error) {
	var user models.User
	if err := r.DB.Select("token_balance").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.ErrNotFound
		}
		return 0, storageErr(err)
	}
	logrus.Debugf("balance for user %d: %d", userID, user.TokenBalance)
	return user.TokenBalance, nil
}
