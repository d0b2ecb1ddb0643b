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

package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Appointment statuses as emitted by the records backend.
const (
	AppointmentScheduled  = "scheduled"
	AppointmentPending    = "pending"
	AppointmentInProgress = "in_progress"
	AppointmentCompleted  = "completed"
	AppointmentCancelled  = "cancelled"
)

// Invoice statuses.
const (
	InvoicePaid    = "paid"
	InvoicePending = "pending"
	InvoiceOverdue = "overdue"
)

// Lab report statuses.
const (
	ReportPending   = "pending"
	ReportCompleted = "completed"
)

// timeLayouts are tried in order when decoding a timestamp. The backend
// mixes full RFC3339, naive datetimes and bare dates across collections.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FlexTime decodes the timestamp formats the backend is known to emit.
// An unparsable value decodes to the zero time rather than failing the
// whole collection; the zero time buckets to the empty day key and is
// therefore excluded from every date-scoped aggregate.
type FlexTime struct {
	time.Time
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		t.Time = time.Time{}
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		t.Time = parseTimestamp(s)
		return nil
	}
	// Numeric timestamps arrive as unix seconds or milliseconds.
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		t.Time = time.Time{}
		return nil
	}
	if n > 1e12 {
		t.Time = time.UnixMilli(n)
	} else {
		t.Time = time.Unix(n, 0)
	}
	return nil
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// parseTimestamp parses a string timestamp against the known layouts.
// If every layout fails, it returns the zero time.
func parseTimestamp(s string) time.Time {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Appointment is a raw appointment record. Patient and doctor references
// arrive in any RawPerson shape; DoctorID/PatientID are the flat
// foreign-key variants some responses carry instead of (or alongside)
// the nested objects.
type Appointment struct {
	ID        FlexID    `json:"id"`
	AltID     FlexID    `json:"_id"`
	Patient   RawPerson `json:"patient"`
	Doctor    RawPerson `json:"doctor"`
	PatientID FlexID    `json:"patientId"`
	DoctorID  FlexID    `json:"doctorId"`
	Date      FlexTime  `json:"date"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason"`
}

// Invoice is a raw billing record. Amounts are decimal to keep revenue
// sums exact.
type Invoice struct {
	ID          FlexID          `json:"id"`
	AltID       FlexID          `json:"_id"`
	Patient     RawPerson       `json:"patient"`
	PatientID   FlexID          `json:"patientId"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Date        FlexTime        `json:"date"`
	Description string          `json:"description"`
}

// LabReport is a raw lab report record.
type LabReport struct {
	ID        FlexID    `json:"id"`
	AltID     FlexID    `json:"_id"`
	Patient   RawPerson `json:"patient"`
	Doctor    RawPerson `json:"doctor"`
	PatientID FlexID    `json:"patientId"`
	DoctorID  FlexID    `json:"doctorId"`
	TestName  string    `json:"testName"`
	Status    string    `json:"status"`
	Date      FlexTime  `json:"date"`
}

// RecordID returns the first present identifier of a record.
func RecordID(id, altID FlexID) string {
	return firstNonEmpty(id.String(), altID.String())
}

// SubjectRef returns the nested person reference for the given role.
// Flat id fields are deliberately ignored: a record whose nested subject
// object is absent is never attributed to anyone.
func (a *Appointment) SubjectRef(role Role) RawPerson {
	if role == RoleDoctor {
		return a.Doctor
	}
	return a.Patient
}

func (i *Invoice) SubjectRef(role Role) RawPerson {
	if role == RoleDoctor {
		return RawPerson{}
	}
	return i.Patient
}

func (r *LabReport) SubjectRef(role Role) RawPerson {
	if role == RoleDoctor {
		return r.Doctor
	}
	return r.Patient
}
