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

// Role identifies which side of a record a subject occupies.
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// SubjectContext is the authenticated actor plus every alternate key the
// backend may use to reference them in a foreign-keyed record. It is
// built once per dashboard session and never mutated.
type SubjectContext struct {
	Role      Role              `json:"role"`
	AccountID string            `json:"account_id"` // id of the user/account row
	ProfileID string            `json:"profile_id"` // id of the doctor/patient profile row
	Identity  CanonicalIdentity `json:"identity"`
}

// matchStrategy reports whether a nested person reference belongs to the
// subject. Strategies are evaluated in declaration order, stopping at
// the first hit; the order favors the profile-level key over the
// account-level fallbacks because different backend responses populate
// different subsets of these fields.
type matchStrategy func(ref PersonFields, subject SubjectContext) bool

var matchStrategies = []matchStrategy{
	matchProfileID,
	matchUserIDField,
	matchNestedUserID,
}

// matchProfileID: the reference's own id equals the subject's profile id.
func matchProfileID(ref PersonFields, subject SubjectContext) bool {
	id := firstNonEmpty(ref.ID.String(), ref.AltID.String())
	return id != "" && subject.ProfileID != "" && id == subject.ProfileID
}

// matchUserIDField: the reference carries a userId foreign key equal to
// the subject's account id.
func matchUserIDField(ref PersonFields, subject SubjectContext) bool {
	id := ref.UserID.String()
	return id != "" && subject.AccountID != "" && id == subject.AccountID
}

// matchNestedUserID: the reference nests a user object whose id equals
// the subject's account id.
func matchNestedUserID(ref PersonFields, subject SubjectContext) bool {
	if ref.User == nil {
		return false
	}
	id := firstNonEmpty(ref.User.ID.String(), ref.User.AltID.String())
	return id != "" && subject.AccountID != "" && id == subject.AccountID
}

// MatchesSubject reports whether a person reference belongs to the
// subject. Only the object variant can match: a missing reference or a
// bare display name carries no keys, so the record is not attributed to
// anyone. Missing subfields are non-matches, never errors.
func MatchesSubject(ref RawPerson, subject SubjectContext) bool {
	if ref.Kind != PersonObject {
		return false
	}
	for _, strategy := range matchStrategies {
		if strategy(ref.Fields, subject) {
			return true
		}
	}
	return false
}

// MatchesSubject applies the strategy chain to the appointment's
// reference for the given role.
func (a *Appointment) MatchesSubject(subject SubjectContext, role Role) bool {
	return MatchesSubject(a.SubjectRef(role), subject)
}

func (i *Invoice) MatchesSubject(subject SubjectContext, role Role) bool {
	return MatchesSubject(i.SubjectRef(role), subject)
}

func (r *LabReport) MatchesSubject(subject SubjectContext, role Role) bool {
	return MatchesSubject(r.SubjectRef(role), subject)
}
