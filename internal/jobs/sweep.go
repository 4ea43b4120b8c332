package jobs

import (
	"log"
	"time"

	"medibook-server/internal/services"
)

// SweepMissedAppointments transitions past scheduled appointments to missed.
// Runs on a cron schedule as a supplement to the sweep performed on
// appointment-list reads, so the staleness window stays bounded even when
// nobody opens a dashboard.
func SweepMissedAppointments(appointments *services.AppointmentService) {
	swept, err := appointments.SweepMissed(time.Now())
	if err != nil {
		log.Printf("Error sweeping missed appointments: %v", err)
		return
	}
	if swept > 0 {
		log.Printf("Marked %d appointment(s) as missed.", swept)
	}
}
