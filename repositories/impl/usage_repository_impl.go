package impl

import (
	"errors"

	"SlowDown/models"
	"SlowDown/repositories"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsageRepositoryImpl struct {
	DB *gorm.DB
}

func NewUsageRepository(db *gorm.DB) repositories.UsageRepository {
	return &UsageRepositoryImpl{DB: db}
}

func (r *UsageRepositoryImpl) FindByUserAndDate(userID, dateKey string) (models.UsageRecord, error) {
	var record models.UsageRecord
	err := r.DB.Where("user_id = ? AND date_key = ?", userID, dateKey).First(&record).Error
	if err != nil {
		return models.UsageRecord{}, translate(err)
	}
	return record, nil
}

// UpsertMax is the resync merge. The high-water mark is enforced in the
// database so concurrent syncs from several sessions can never shrink the
// stored total; the app map is the latest device read, replaced wholesale.
func (r *UsageRepositoryImpl) UpsertMax(record models.UsageRecord) (models.UsageRecord, error) {
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_minutes": gorm.Expr("GREATEST(usage_records.total_minutes, EXCLUDED.total_minutes)"),
			"app_usage":     gorm.Expr("EXCLUDED.app_usage"),
			"updated_at":    gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&record).Error
	if err != nil {
		return models.UsageRecord{}, err
	}
	return r.FindByUserAndDate(record.UserID, record.DateKey)
}

// AddDelta is the increment merge: the delta is added to the total and to
// the app's entry under a row lock, never maxed. Two first deltas of a
// user-day can race past the lock (no row to lock yet) into the insert;
// the loser hits the unique index and re-runs against the winner's row.
func (r *UsageRepositoryImpl) AddDelta(userID, dateKey, appLabel string, minutes float64) (models.UsageRecord, error) {
	return retryOnDuplicate(func() (models.UsageRecord, error) {
		return r.addDelta(userID, dateKey, appLabel, minutes)
	})
}

func (r *UsageRepositoryImpl) addDelta(userID, dateKey, appLabel string, minutes float64) (models.UsageRecord, error) {
	var record models.UsageRecord
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND date_key = ?", userID, dateKey).
			First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			record = models.UsageRecord{UserID: userID, DateKey: dateKey}
		} else if err != nil {
			return err
		}

		record.TotalMinutes += minutes
		apps := record.AppUsageMap()
		if appLabel != "" {
			apps[appLabel] += minutes
		}
		record.SetAppUsage(apps)

		return tx.Save(&record).Error
	})
	if err != nil {
		return models.UsageRecord{}, err
	}
	return record, nil
}

// retryOnDuplicate re-runs fn once when it lost an insert race on the
// (user_id, date_key) index. Any other error passes through.
func retryOnDuplicate(fn func() (models.UsageRecord, error)) (models.UsageRecord, error) {
	record, err := fn()
	if err != nil && isUniqueViolation(err) {
		return fn()
	}
	return record, err
}

func (r *UsageRepositoryImpl) FindSince(userID, sinceKey string) ([]models.UsageRecord, error) {
	var records []models.UsageRecord
	err := r.DB.Where("user_id = ? AND date_key >= ?", userID, sinceKey).
		Order("date_key DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
