package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func doctorSubject() SubjectContext {
	return SubjectContext{
		Role:      RoleDoctor,
		AccountID: "acct-7",
		ProfileID: "doc-3",
		Identity:  CanonicalIdentity{ID: "doc-3", Name: "Asha Verma"},
	}
}

func TestMatchesSubjectProfileID(t *testing.T) {
	ref := PersonFromFields(PersonFields{ID: "doc-3"})
	assert.True(t, MatchesSubject(ref, doctorSubject()))
}

func TestMatchesSubjectUserIDField(t *testing.T) {
	ref := PersonFromFields(PersonFields{ID: "other", UserID: "acct-7"})
	assert.True(t, MatchesSubject(ref, doctorSubject()))
}

func TestMatchesSubjectNestedUserID(t *testing.T) {
	ref := PersonFromFields(PersonFields{User: &PersonFields{ID: "acct-7"}})
	assert.True(t, MatchesSubject(ref, doctorSubject()))
}

func TestMatchesSubjectPrecedence(t *testing.T) {
	// Profile-id equality must decide the match on its own; the presence
	// or absence of user-id fields that would match a different subject
	// is irrelevant once the first strategy hits.
	ref := PersonFromFields(PersonFields{
		ID:     "doc-3",
		UserID: "someone-else",
		User:   &PersonFields{ID: "someone-else"},
	})
	assert.True(t, MatchesSubject(ref, doctorSubject()))

	stripped := PersonFromFields(PersonFields{ID: "doc-3"})
	assert.True(t, MatchesSubject(stripped, doctorSubject()))
}

func TestMatchesSubjectAbsentReference(t *testing.T) {
	assert.False(t, MatchesSubject(RawPerson{}, doctorSubject()))
}

func TestMatchesSubjectBareStringNeverMatches(t *testing.T) {
	assert.False(t, MatchesSubject(PersonFromName("Asha Verma"), doctorSubject()))
}

func TestMatchesSubjectEmptyKeysAreNonMatches(t *testing.T) {
	subject := SubjectContext{Role: RoleDoctor}
	ref := PersonFromFields(PersonFields{ID: "", UserID: ""})
	assert.False(t, MatchesSubject(ref, subject), "empty-on-both-sides must not match")
}

func TestAppointmentFlatIDNeverAttributes(t *testing.T) {
	// Exclusion policy: no nested doctor object means no doctor match,
	// even when a flat doctorId happens to equal the subject's key.
	appt := Appointment{DoctorID: "doc-3"}
	assert.False(t, appt.MatchesSubject(doctorSubject(), RoleDoctor))
}

func TestInvoiceHasNoDoctorSide(t *testing.T) {
	inv := Invoice{Patient: PersonFromFields(PersonFields{ID: "pat-1"})}
	assert.False(t, inv.MatchesSubject(doctorSubject(), RoleDoctor))
	assert.True(t, inv.MatchesSubject(SubjectContext{Role: RolePatient, ProfileID: "pat-1"}, RolePatient))
}
