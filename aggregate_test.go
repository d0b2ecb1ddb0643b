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
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careviewhq/careview/model"
)

func mustInvoices(t *testing.T, raw string) []model.Invoice {
	t.Helper()
	var invoices []model.Invoice
	require.NoError(t, json.Unmarshal([]byte(raw), &invoices))
	return invoices
}

func TestPercentCollected(t *testing.T) {
	tests := []struct {
		name        string
		paid        int64
		outstanding int64
		expected    int
	}{
		{"both zero", 0, 0, 0},
		{"all collected", 250, 0, 100},
		{"nothing collected", 0, 80, 0},
		{"three quarters", 75, 25, 75},
		{"rounds half up", 100, 75, 57},
		{"rounds down below half", 100, 200, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentCollected(decimal.NewFromInt(tt.paid), decimal.NewFromInt(tt.outstanding))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRevenueAndDues(t *testing.T) {
	invoices := mustInvoices(t, `[
		{"id": "inv-1", "amount": 100, "status": "paid", "date": "2025-03-12"},
		{"id": "inv-2", "amount": 50, "status": "pending", "date": "2025-03-14"},
		{"id": "inv-3", "amount": 25, "status": "overdue", "date": "2025-02-01"}
	]`)

	revenue := MonthlyRevenue(invoices, 3, 2025, time.UTC)
	dues := OutstandingDues(invoices)

	assert.True(t, revenue.Equal(decimal.NewFromInt(100)), "revenue %s", revenue)
	assert.True(t, dues.Equal(decimal.NewFromInt(75)), "dues %s", dues)
	assert.Equal(t, 57, PercentCollected(revenue, dues))
}

func TestMonthlyRevenueIgnoresOtherPeriodsAndStatuses(t *testing.T) {
	invoices := mustInvoices(t, `[
		{"id": "inv-1", "amount": "40.50", "status": "paid", "date": "2025-03-31T23:00:00Z"},
		{"id": "inv-2", "amount": 10, "status": "paid", "date": "2025-04-01"},
		{"id": "inv-3", "amount": 99, "status": "pending", "date": "2025-03-10"},
		{"id": "inv-4", "amount": 7, "status": "paid", "date": "not a date"}
	]`)

	revenue := MonthlyRevenue(invoices, 3, 2025, time.UTC)
	assert.True(t, revenue.Equal(decimal.RequireFromString("40.5")), "revenue %s", revenue)
}

func TestCountAppointmentsOnDay(t *testing.T) {
	var appointments []model.Appointment
	raw := `[
		{"id": "a1", "date": "2025-03-12T09:00:00Z", "status": "scheduled"},
		{"id": "a2", "date": "2025-03-12T15:30:00Z", "status": "completed"},
		{"id": "a3", "date": "2025-03-12T11:00:00Z", "status": "cancelled"},
		{"id": "a4", "date": "2025-03-13T09:00:00Z", "status": "scheduled"},
		{"id": "a5", "date": "garbage", "status": "scheduled"}
	]`
	require.NoError(t, json.Unmarshal([]byte(raw), &appointments))

	assert.Equal(t, 2, CountAppointmentsOnDay(appointments, "2025-03-12", time.UTC, nil))
	assert.Equal(t, 1, CountAppointmentsOnDay(appointments, "2025-03-12", time.UTC, completedOnly))
	// The empty sentinel key must never count the unparsable record.
	assert.Equal(t, 0, CountAppointmentsOnDay(appointments, "", time.UTC, nil))
}

func TestDistinctPatientCount(t *testing.T) {
	var appointments []model.Appointment
	raw := `[
		{"id": "a1", "patient": {"id": "pat-1", "name": "Ada Obi"}},
		{"id": "a2", "patient": {"_id": "pat-1", "first_name": "Ada", "last_name": "Obi"}},
		{"id": "a3", "patient": "Chidi Eze"},
		{"id": "a4", "patient": {"id": "pat-2"}},
		{"id": "a5"}
	]`
	require.NoError(t, json.Unmarshal([]byte(raw), &appointments))

	// pat-1 appears twice in different shapes; the bare name and the
	// second id each count once; the absent reference is skipped.
	assert.Equal(t, 3, DistinctPatientCount(appointments))
}
