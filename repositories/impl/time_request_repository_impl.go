package impl

import (
	"errors"
	"strings"
	"time"

	"SlowDown/models"
	"SlowDown/repositories"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TimeRequestRepositoryImpl struct {
	DB *gorm.DB
}

func NewTimeRequestRepository(db *gorm.DB) repositories.TimeRequestRepository {
	return &TimeRequestRepositoryImpl{DB: db}
}

// CreatePending inserts the request and sets the user's pending pointer in
// one transaction. The duplicate check runs inside it, and the partial
// unique index on (user_id) WHERE status='pending' backstops the race
// between two concurrent creates.
func (r *TimeRequestRepositoryImpl) CreatePending(request *models.TimeRequest) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.TimeRequest{}).
			Where("user_id = ? AND status = ?", request.UserID, models.RequestStatusPending).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return repositories.ErrDuplicatePending
		}

		request.Status = models.RequestStatusPending
		if err := tx.Create(request).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", request.UserID).
			Update("pending_time_request_id", request.ID).Error
	})
	if err != nil && isUniqueViolation(err) {
		return repositories.ErrDuplicatePending
	}
	return err
}

// Approve does the three writes atomically: request goes terminal, the
// bonus is credited exactly once, the pending pointer clears. A partial
// failure rolls all of it back.
func (r *TimeRequestRepositoryImpl) Approve(requestID, adminID string, approvedMinutes int, note string) (models.TimeRequest, error) {
	var request models.TimeRequest
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, requestID, &request); err != nil {
			return err
		}

		now := time.Now()
		request.Status = models.RequestStatusApproved
		request.ApprovedMinutes = approvedMinutes
		request.AdminID = adminID
		request.AdminNote = note
		request.ProcessedAt = &now
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", request.UserID).
			Updates(map[string]interface{}{
				"bonus_minutes":           gorm.Expr("bonus_minutes + ?", approvedMinutes),
				"pending_time_request_id": nil,
			}).Error
	})
	if err != nil {
		return models.TimeRequest{}, err
	}
	return request, nil
}

func (r *TimeRequestRepositoryImpl) Reject(requestID, adminID, note string) (models.TimeRequest, error) {
	var request models.TimeRequest
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, requestID, &request); err != nil {
			return err
		}

		now := time.Now()
		request.Status = models.RequestStatusRejected
		request.AdminID = adminID
		request.AdminNote = note
		request.ProcessedAt = &now
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", request.UserID).
			Update("pending_time_request_id", nil).Error
	})
	if err != nil {
		return models.TimeRequest{}, err
	}
	return request, nil
}

func (r *TimeRequestRepositoryImpl) DeletePending(requestID, userID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ? AND status = ?",
			requestID, userID, models.RequestStatusPending).
			Delete(&models.TimeRequest{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repositories.ErrNotFound
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("pending_time_request_id", nil).Error
	})
}

func (r *TimeRequestRepositoryImpl) FindByID(id string) (models.TimeRequest, error) {
	var request models.TimeRequest
	if err := r.DB.Where("id = ?", id).First(&request).Error; err != nil {
		return models.TimeRequest{}, translate(err)
	}
	return request, nil
}

func (r *TimeRequestRepositoryImpl) FindAll(status string) ([]models.TimeRequest, error) {
	query := r.DB.Preload("User").
		Order("CASE status WHEN 'pending' THEN 0 WHEN 'approved' THEN 1 ELSE 2 END, created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.TimeRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *TimeRequestRepositoryImpl) FindByUser(userID string) ([]models.TimeRequest, error) {
	var requests []models.TimeRequest
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *TimeRequestRepositoryImpl) FindPendingByUser(userID string) (models.TimeRequest, error) {
	var request models.TimeRequest
	err := r.DB.Where("user_id = ? AND status = ?", userID, models.RequestStatusPending).
		Order("created_at DESC").
		First(&request).Error
	if err != nil {
		return models.TimeRequest{}, translate(err)
	}
	return request, nil
}

// lockRequest loads the request FOR UPDATE and rejects terminal ones, so
// two admins racing on the same request cannot both credit it.
func lockRequest(tx *gorm.DB, requestID string, out *models.TimeRequest) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", requestID).
		First(out).Error
	if err != nil {
		return translate(err)
	}
	if out.Processed() {
		return repositories.ErrAlreadyProcessed
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value")
}
