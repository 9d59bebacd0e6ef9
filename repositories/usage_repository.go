package repositories

import "SlowDown/models"

type UsageRepository interface {
	// FindByUserAndDate returns the record for one user-day, or ErrNotFound.
	FindByUserAndDate(userID, dateKey string) (models.UsageRecord, error)

	// UpsertMax inserts or merges a cumulative reading: the stored total
	// becomes GREATEST(stored, reported) and the per-app map is replaced by
	// the reported one. Safe under concurrent writers.
	UpsertMax(record models.UsageRecord) (models.UsageRecord, error)

	// AddDelta adds a measured delta to the day's total and to one app's
	// entry, creating the record if needed. Runs in a row-locked
	// transaction.
	AddDelta(userID, dateKey, appLabel string, minutes float64) (models.UsageRecord, error)

	// FindSince returns the user's records with dateKey >= sinceKey, newest
	// first.
	FindSince(userID, sinceKey string) ([]models.UsageRecord, error)
}
