package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveIdentityAbsent(t *testing.T) {
	identity := ResolveIdentity(RawPerson{})
	assert.Equal(t, CanonicalIdentity{}, identity)
}

func TestResolveIdentityFromString(t *testing.T) {
	identity := ResolveIdentity(PersonFromName("Amara Okafor"))
	assert.Equal(t, "Amara Okafor", identity.Name)
	assert.Equal(t, "Amara", identity.FirstName)
	assert.Equal(t, "Okafor", identity.LastName)
	assert.Empty(t, identity.ID)
}

func TestResolveIdentitySingleToken(t *testing.T) {
	identity := ResolveIdentity(PersonFromName("Cher"))
	assert.Equal(t, "Cher", identity.FirstName)
	assert.Empty(t, identity.LastName)
	assert.Equal(t, "Cher", identity.Name)
}

func TestResolveIdentityFlatObject(t *testing.T) {
	identity := ResolveIdentity(PersonFromFields(PersonFields{
		ID:        "42",
		FirstName: "Lena",
		LastName:  "Adeyemi",
	}))
	assert.Equal(t, "42", identity.ID)
	assert.Equal(t, "Lena Adeyemi", identity.Name)
}

func TestResolveIdentitySnakeCaseFallback(t *testing.T) {
	identity := ResolveIdentity(PersonFromFields(PersonFields{
		AltID:    "6617f0",
		FirstSnk: "Noor",
		LastSnk:  "Haddad",
	}))
	assert.Equal(t, "6617f0", identity.ID, "_id must back-fill a missing id")
	assert.Equal(t, "Noor", identity.FirstName)
	assert.Equal(t, "Noor Haddad", identity.Name)
}

func TestResolveIdentityNestedUser(t *testing.T) {
	identity := ResolveIdentity(PersonFromFields(PersonFields{
		User: &PersonFields{ID: "u-9", Name: "Tomas Ruiz"},
	}))
	assert.Equal(t, "u-9", identity.ID)
	assert.Equal(t, "Tomas Ruiz", identity.Name)
	assert.Equal(t, "Tomas", identity.FirstName)
	assert.Equal(t, "Ruiz", identity.LastName)
}

func TestResolveIdentityOuterFieldsWinOverNested(t *testing.T) {
	identity := ResolveIdentity(PersonFromFields(PersonFields{
		ID:   "p-1",
		Name: "Outer Name",
		User: &PersonFields{ID: "u-2", Name: "Inner Name"},
	}))
	assert.Equal(t, "p-1", identity.ID)
	assert.Equal(t, "Outer Name", identity.Name)
}

func TestResolveIdentityIdempotent(t *testing.T) {
	inputs := []RawPerson{
		{},
		PersonFromName("Grace Park"),
		PersonFromName("  Plato "),
		PersonFromFields(PersonFields{ID: "1", FirstName: "Ada"}),
		PersonFromFields(PersonFields{AltID: "2", Name: "Mary Jane Watson"}),
		PersonFromFields(PersonFields{User: &PersonFields{ID: "3", FirstSnk: "Sam", LastSnk: "Okoye"}}),
	}
	for _, raw := range inputs {
		once := ResolveIdentity(raw)
		twice := ResolveIdentity(once.AsRawPerson())
		assert.Equal(t, once, twice, "resolver must be idempotent for %+v", raw)
	}
}

func TestResolveIdentityNameRoundTrip(t *testing.T) {
	identity := ResolveIdentity(PersonFromFields(PersonFields{Name: "Ibrahim Diallo"}))
	assert.Equal(t, "Ibrahim", identity.FirstName)
	assert.Equal(t, "Diallo", identity.LastName)

	rebuilt := ResolveIdentity(PersonFromFields(PersonFields{
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
	}))
	assert.Equal(t, "Ibrahim Diallo", rebuilt.Name)
}

func TestRawPersonUnmarshalShapes(t *testing.T) {
	var fromString RawPerson
	assert.NoError(t, json.Unmarshal([]byte(`"Dr. Wu"`), &fromString))
	assert.Equal(t, PersonName, fromString.Kind)
	assert.Equal(t, "Dr. Wu", fromString.Name)

	var fromNull RawPerson
	assert.NoError(t, json.Unmarshal([]byte(`null`), &fromNull))
	assert.Equal(t, PersonAbsent, fromNull.Kind)

	var fromObject RawPerson
	payload := []byte(`{"_id": 88, "first_name": "Ines", "user": {"id": "u-5"}}`)
	assert.NoError(t, json.Unmarshal(payload, &fromObject))
	assert.Equal(t, PersonObject, fromObject.Kind)
	assert.Equal(t, FlexID("88"), fromObject.Fields.AltID, "numeric ids normalize to strings")
	assert.Equal(t, FlexID("u-5"), fromObject.Fields.User.ID)
}
