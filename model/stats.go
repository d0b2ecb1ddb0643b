package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DoctorDashboardStats is the flat counter set for a doctor's dashboard.
// A stats object is assembled wholesale on every reconciliation pass and
// replaces the previous one; it is never patched in place.
type DoctorDashboardStats struct {
	TodayAppointments int `json:"today_appointments"`
	CompletedToday    int `json:"completed_today"`
	TotalPatients     int `json:"total_patients"`
	PendingReports    int `json:"pending_reports"`
}

// PatientDashboardStats is the flat counter set for a patient's dashboard.
type PatientDashboardStats struct {
	UpcomingAppointments int             `json:"upcoming_appointments"`
	PendingDues          decimal.Decimal `json:"pending_dues"`
	ReportsReady         int             `json:"reports_ready"`
}

// AdminDashboardStats is the flat counter set for the billing/admin
// dashboard. PercentCollected is pre-rounded to an integer percentage.
type AdminDashboardStats struct {
	TodayAppointments int             `json:"today_appointments"`
	MonthlyRevenue    decimal.Decimal `json:"monthly_revenue"`
	PendingDues       decimal.Decimal `json:"pending_dues"`
	PercentCollected  int             `json:"percent_collected"`
	TotalDoctors      int             `json:"total_doctors"`
	TotalPatients     int             `json:"total_patients"`
}

// Row is a canonical, display-ready record. Names are fully resolved,
// role prefixes applied, and the day key precomputed; the rendering
// layer does no further reconciliation.
type Row struct {
	ID          string    `json:"id"`
	PatientName string    `json:"patient_name"`
	DoctorName  string    `json:"doctor_name"`
	Status      string    `json:"status"`
	Detail      string    `json:"detail,omitempty"`
	DayKey      string    `json:"day_key"`
	Timestamp   time.Time `json:"timestamp"`
}
