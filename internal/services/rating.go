package services

import (
	"fmt"

	"gorm.io/gorm"

	"medibook-server/internal/models"
)

// RecomputeDoctorRating recalculates a doctor's average rating and rating
// count from the full set of rated appointments. Deliberately a full scan
// rather than an incremental update: it stays correct if ratings are ever
// edited or removed, and the data volume is small.
//
// This function is the only writer of doctors.rating and
// doctors.total_ratings.
func RecomputeDoctorRating(tx *gorm.DB, doctorID string) error {
	var agg struct {
		Avg *float64
		Cnt int64
	}
	err := tx.Model(&models.Appointment{}).
		Select("AVG(rating) AS avg, COUNT(rating) AS cnt").
		Where("doctor_id = ? AND rating IS NOT NULL", doctorID).
		Scan(&agg).Error
	if err != nil {
		return fmt.Errorf("aggregating ratings: %w", err)
	}

	average := 0.0
	if agg.Avg != nil {
		average = *agg.Avg
	}

	err = tx.Model(&models.Doctor{}).Where("id = ?", doctorID).
		Updates(map[string]interface{}{
			"rating":        average,
			"total_ratings": agg.Cnt,
		}).Error
	if err != nil {
		return fmt.Errorf("updating doctor aggregate: %w", err)
	}
	return nil
}
