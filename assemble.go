/*
Copyright 2025 Careview Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package careview

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/careviewhq/careview/internal/notification"
	"github.com/careviewhq/careview/model"
)

// upcomingStatuses are the appointment statuses shown as upcoming work.
var upcomingStatuses = map[string]struct{}{
	model.AppointmentScheduled:  {},
	model.AppointmentPending:    {},
	model.AppointmentInProgress: {},
}

var completedOnly = map[string]struct{}{
	model.AppointmentCompleted: {},
}

// DoctorDashboard is the assembled view-model for a doctor's home page.
type DoctorDashboard struct {
	PassID      string                     `json:"pass_id"`
	StartedAt   time.Time                  `json:"started_at"`
	CompletedAt time.Time                  `json:"completed_at"`
	Stats       model.DoctorDashboardStats `json:"stats"`
	Rows        []model.Row                `json:"rows"`
}

// PatientDashboard is the assembled view-model for a patient's home page.
type PatientDashboard struct {
	PassID      string                      `json:"pass_id"`
	StartedAt   time.Time                   `json:"started_at"`
	CompletedAt time.Time                   `json:"completed_at"`
	Stats       model.PatientDashboardStats `json:"stats"`
	Rows        []model.Row                 `json:"rows"`
}

// AdminDashboard is the assembled view-model for the billing/admin page.
type AdminDashboard struct {
	PassID      string                    `json:"pass_id"`
	StartedAt   time.Time                 `json:"started_at"`
	CompletedAt time.Time                 `json:"completed_at"`
	Stats       model.AdminDashboardStats `json:"stats"`
	Rows        []model.Row               `json:"rows"`
}

// snapshot holds one immutable set of decoded collections. A pass
// aggregates over exactly one snapshot; later fetches never mutate it.
type snapshot struct {
	patients     []model.RawPerson
	doctors      []model.RawPerson
	appointments []model.Appointment
	invoices     []model.Invoice
	reports      []model.LabReport
}

// fetchSnapshot fetches the named collections concurrently and decodes
// them into a fresh snapshot. If any fetch or decode fails, the whole
// snapshot is discarded and the first error is returned; a dashboard is
// assembled from a complete snapshot or not at all.
func (c *Careview) fetchSnapshot(ctx context.Context, collections ...string) (*snapshot, error) {
	snap := &snapshot{}
	decoders := map[string]func(json.RawMessage) error{
		CollectionPatients:     func(raw json.RawMessage) error { return json.Unmarshal(raw, &snap.patients) },
		CollectionDoctors:      func(raw json.RawMessage) error { return json.Unmarshal(raw, &snap.doctors) },
		CollectionAppointments: func(raw json.RawMessage) error { return json.Unmarshal(raw, &snap.appointments) },
		CollectionInvoices:     func(raw json.RawMessage) error { return json.Unmarshal(raw, &snap.invoices) },
		CollectionLabReports:   func(raw json.RawMessage) error { return json.Unmarshal(raw, &snap.reports) },
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	for _, name := range collections {
		decode, ok := decoders[name]
		if !ok {
			return nil, errors.Errorf("unknown collection %q", name)
		}
		wg.Add(1)
		go func(name string, decode func(json.RawMessage) error) {
			defer wg.Done()
			raw, err := c.source.Fetch(ctx, name)
			if err == nil {
				err = decode(raw)
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = errors.Wrapf(err, "snapshot of %q", name)
				}
				mu.Unlock()
			}
		}(name, decode)
	}
	wg.Wait()

	if firstErr != nil {
		notification.NotifyError(firstErr)
		return nil, firstErr
	}
	// A pass whose subject went away mid-fetch is discarded, never
	// assembled against stale state.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}

// AssembleDoctorDashboard runs a reconciliation pass scoped to the given
// doctor. Records whose nested doctor reference does not match the
// subject are dropped from both rows and stats.
func (c *Careview) AssembleDoctorDashboard(ctx context.Context, subject model.SubjectContext) (*DoctorDashboard, error) {
	ctx, span := otel.Tracer("careview.assemble").Start(ctx, "AssembleDoctorDashboard")
	defer span.End()

	view := &DoctorDashboard{
		PassID:    model.GenerateUUIDWithSuffix("pass"),
		StartedAt: c.clock.Now(),
	}

	snap, err := c.fetchSnapshot(ctx, CollectionAppointments, CollectionLabReports)
	if err != nil {
		return nil, err
	}

	var own []model.Appointment
	for _, appt := range snap.appointments {
		if appt.MatchesSubject(subject, model.RoleDoctor) {
			own = append(own, appt)
		}
	}
	var ownReports []model.LabReport
	for _, report := range snap.reports {
		if report.MatchesSubject(subject, model.RoleDoctor) {
			ownReports = append(ownReports, report)
		}
	}

	loc := c.location()
	today := model.DayKey(c.clock.Now(), loc)

	view.Stats = model.DoctorDashboardStats{
		TodayAppointments: CountAppointmentsOnDay(own, today, loc, nil),
		CompletedToday:    CountAppointmentsOnDay(own, today, loc, completedOnly),
		TotalPatients:     DistinctPatientCount(own),
		PendingReports:    CountReports(ownReports, model.ReportPending),
	}
	view.Rows = c.appointmentRows(filterAppointments(own, func(a model.Appointment) bool {
		_, upcoming := upcomingStatuses[a.Status]
		return upcoming && model.DayKey(a.Date.Time, loc) == today
	}), loc)
	view.CompletedAt = c.clock.Now()
	return view, nil
}

// AssemblePatientDashboard runs a reconciliation pass scoped to the
// given patient.
func (c *Careview) AssemblePatientDashboard(ctx context.Context, subject model.SubjectContext) (*PatientDashboard, error) {
	ctx, span := otel.Tracer("careview.assemble").Start(ctx, "AssemblePatientDashboard")
	defer span.End()

	view := &PatientDashboard{
		PassID:    model.GenerateUUIDWithSuffix("pass"),
		StartedAt: c.clock.Now(),
	}

	snap, err := c.fetchSnapshot(ctx, CollectionAppointments, CollectionInvoices, CollectionLabReports)
	if err != nil {
		return nil, err
	}

	var own []model.Appointment
	for _, appt := range snap.appointments {
		if appt.MatchesSubject(subject, model.RolePatient) {
			own = append(own, appt)
		}
	}
	var ownInvoices []model.Invoice
	for _, inv := range snap.invoices {
		if inv.MatchesSubject(subject, model.RolePatient) {
			ownInvoices = append(ownInvoices, inv)
		}
	}
	var ownReports []model.LabReport
	for _, report := range snap.reports {
		if report.MatchesSubject(subject, model.RolePatient) {
			ownReports = append(ownReports, report)
		}
	}

	loc := c.location()
	today := model.DayKey(c.clock.Now(), loc)

	// Day keys are YYYY-MM-DD, so string comparison orders them; the
	// empty sentinel key sorts before every real day and drops out.
	upcoming := filterAppointments(own, func(a model.Appointment) bool {
		_, ok := upcomingStatuses[a.Status]
		return ok && model.DayKey(a.Date.Time, loc) >= today
	})

	view.Stats = model.PatientDashboardStats{
		UpcomingAppointments: len(upcoming),
		PendingDues:          OutstandingDues(ownInvoices),
		ReportsReady:         CountReports(ownReports, model.ReportCompleted),
	}
	view.Rows = c.appointmentRows(upcoming, loc)
	view.CompletedAt = c.clock.Now()
	return view, nil
}

// AssembleAdminDashboard runs an unscoped reconciliation pass over the
// whole clinic for the billing/admin page.
func (c *Careview) AssembleAdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	ctx, span := otel.Tracer("careview.assemble").Start(ctx, "AssembleAdminDashboard")
	defer span.End()

	view := &AdminDashboard{
		PassID:    model.GenerateUUIDWithSuffix("pass"),
		StartedAt: c.clock.Now(),
	}

	snap, err := c.fetchSnapshot(ctx, CollectionPatients, CollectionDoctors, CollectionAppointments, CollectionInvoices)
	if err != nil {
		return nil, err
	}

	loc := c.location()
	now := c.clock.Now()
	today := model.DayKey(now, loc)
	month, year := model.MonthYear(now, loc)

	revenue := MonthlyRevenue(snap.invoices, month, year, loc)
	dues := OutstandingDues(snap.invoices)

	view.Stats = model.AdminDashboardStats{
		TodayAppointments: CountAppointmentsOnDay(snap.appointments, today, loc, nil),
		MonthlyRevenue:    revenue,
		PendingDues:       dues,
		PercentCollected:  PercentCollected(revenue, dues),
		TotalDoctors:      len(snap.doctors),
		TotalPatients:     len(snap.patients),
	}
	view.Rows = c.appointmentRows(filterAppointments(snap.appointments, func(a model.Appointment) bool {
		return a.Status != model.AppointmentCancelled && model.DayKey(a.Date.Time, loc) == today
	}), loc)
	view.CompletedAt = c.clock.Now()
	return view, nil
}

func filterAppointments(appointments []model.Appointment, keep func(model.Appointment) bool) []model.Appointment {
	var out []model.Appointment
	for _, appt := range appointments {
		if keep(appt) {
			out = append(out, appt)
		}
	}
	return out
}

// appointmentRows converts appointments into canonical display rows,
// sorted stable-ascending by timestamp and capped at the configured row
// limit. Sorting happens before the cap so the cap always keeps the
// earliest entries; the stable sort preserves source order for ties.
func (c *Careview) appointmentRows(appointments []model.Appointment, loc *time.Location) []model.Row {
	sorted := make([]model.Appointment, len(appointments))
	copy(sorted, appointments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Time.Before(sorted[j].Date.Time)
	})
	if c.rowLimit > 0 && len(sorted) > c.rowLimit {
		sorted = sorted[:c.rowLimit]
	}

	rows := make([]model.Row, 0, len(sorted))
	for _, appt := range sorted {
		patient := model.ResolveIdentity(appt.Patient)
		doctor := model.ResolveIdentity(appt.Doctor)
		rows = append(rows, model.Row{
			ID:          model.RecordID(appt.ID, appt.AltID),
			PatientName: patient.Name,
			DoctorName:  doctorDisplayName(doctor),
			Status:      appt.Status,
			Detail:      appt.Reason,
			DayKey:      model.DayKey(appt.Date.Time, loc),
			Timestamp:   appt.Date.Time,
		})
	}
	return rows
}

// doctorDisplayName applies the "Dr. " prefix at the display layer. The
// resolver never prefixes, so identities stay comparable across roles.
func doctorDisplayName(identity model.CanonicalIdentity) string {
	if identity.Name == "" {
		return ""
	}
	if strings.HasPrefix(identity.Name, "Dr.") || strings.HasPrefix(identity.Name, "Dr ") {
		return identity.Name
	}
	return "Dr. " + identity.Name
}
