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
	"time"

	"github.com/shopspring/decimal"

	"github.com/careviewhq/careview/model"
)

var hundred = decimal.NewFromInt(100)

// activeStatuses are the appointment statuses that count toward "today's
// appointments"; cancelled appointments are excluded everywhere.
var activeStatuses = map[string]struct{}{
	model.AppointmentScheduled:  {},
	model.AppointmentPending:    {},
	model.AppointmentInProgress: {},
	model.AppointmentCompleted:  {},
}

// CountAppointmentsOnDay counts the appointments falling on the given
// day key whose status is in the allowed set. A nil allowed set admits
// any non-cancelled status.
func CountAppointmentsOnDay(appointments []model.Appointment, dayKey string, loc *time.Location, allowed map[string]struct{}) int {
	if dayKey == "" {
		return 0
	}
	if allowed == nil {
		allowed = activeStatuses
	}
	count := 0
	for _, appt := range appointments {
		if _, ok := allowed[appt.Status]; !ok {
			continue
		}
		if model.DayKey(appt.Date.Time, loc) == dayKey {
			count++
		}
	}
	return count
}

// MonthlyRevenue sums the amounts of paid invoices dated within the
// given calendar month. Invoices with unparsable dates bucket to (0, 0)
// and are never counted.
func MonthlyRevenue(invoices []model.Invoice, month, year int, loc *time.Location) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		if inv.Status != model.InvoicePaid {
			continue
		}
		m, y := model.MonthYear(inv.Date.Time, loc)
		if m == month && y == year {
			total = total.Add(inv.Amount)
		}
	}
	return total
}

// OutstandingDues sums the amounts of pending and overdue invoices,
// regardless of date.
func OutstandingDues(invoices []model.Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		if inv.Status == model.InvoicePending || inv.Status == model.InvoiceOverdue {
			total = total.Add(inv.Amount)
		}
	}
	return total
}

// PercentCollected computes paid / (paid + outstanding) as an integer
// percentage, rounded half away from zero. A zero denominator yields 0,
// never a division error.
func PercentCollected(paid, outstanding decimal.Decimal) int {
	denominator := paid.Add(outstanding)
	if denominator.IsZero() {
		return 0
	}
	pct := paid.Div(denominator).Mul(hundred).Round(0)
	return int(pct.IntPart())
}

// CountReports counts lab reports carrying the given status.
func CountReports(reports []model.LabReport, status string) int {
	count := 0
	for _, report := range reports {
		if report.Status == status {
			count++
		}
	}
	return count
}

// DistinctPatientCount counts the distinct canonical patients referenced
// by the given appointments. Identity is keyed on the resolved id when
// one exists, falling back to the display name; references that resolve
// to neither are skipped rather than counted as one anonymous patient.
func DistinctPatientCount(appointments []model.Appointment) int {
	seen := make(map[string]struct{})
	for _, appt := range appointments {
		identity := model.ResolveIdentity(appt.Patient)
		key := identity.ID
		if key == "" {
			key = identity.Name
		}
		if key == "" {
			continue
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}
