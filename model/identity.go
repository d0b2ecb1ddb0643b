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
	"strings"
)

// PersonKind discriminates the shapes a person reference arrives in.
// Upstream responses are inconsistent: the same field may hold nothing,
// a pre-formatted display name, or an object with any subset of id and
// name fields (optionally nested under a "user" sub-object).
type PersonKind int

const (
	PersonAbsent PersonKind = iota // field missing or null
	PersonName                     // bare string display name
	PersonObject                   // flat or user-nested object
)

// FlexID holds an identifier that may arrive as a JSON string or number.
// Both render to the same canonical string so that 7 and "7" compare equal.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string {
	return string(f)
}

// PersonFields is the object variant of a person reference. Every field is
// optional; camelCase and snake_case name keys coexist in the wild.
type PersonFields struct {
	ID        FlexID        `json:"id"`
	AltID     FlexID        `json:"_id"`
	Name      string        `json:"name"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	FirstSnk  string        `json:"first_name"`
	LastSnk   string        `json:"last_name"`
	UserID    FlexID        `json:"userId"`
	User      *PersonFields `json:"user"`
}

// RawPerson is the tagged union of every person-reference shape the
// upstream API produces. Decoding never fails on shape grounds; an
// unrecognized value is treated as absent.
type RawPerson struct {
	Kind   PersonKind
	Name   string
	Fields PersonFields
}

func (p *RawPerson) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		p.Kind = PersonAbsent
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		p.Kind = PersonName
		p.Name = s
		return nil
	}
	if trimmed[0] == '{' {
		var fields PersonFields
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		p.Kind = PersonObject
		p.Fields = fields
		return nil
	}
	p.Kind = PersonAbsent
	return nil
}

func (p RawPerson) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PersonName:
		return json.Marshal(p.Name)
	case PersonObject:
		return json.Marshal(p.Fields)
	}
	return []byte("null"), nil
}

// PersonFromName builds the string variant of a RawPerson.
func PersonFromName(name string) RawPerson {
	return RawPerson{Kind: PersonName, Name: name}
}

// PersonFromFields builds the object variant of a RawPerson.
func PersonFromFields(fields PersonFields) RawPerson {
	return RawPerson{Kind: PersonObject, Fields: fields}
}

// CanonicalIdentity is the normalized form of any person reference.
// Invariants: ID is non-empty whenever the input carried id or _id, and
// Name and FirstName/LastName are mutually derivable. String fields
// default to "", never to a null-ish sentinel, so formatting downstream
// never has to guard.
type CanonicalIdentity struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Name      string `json:"name"`
}

// ResolveIdentity normalizes a raw person reference into a canonical
// identity. It is a best-effort transformation over a closed set of
// shapes and never fails; an absent reference resolves to the zero
// identity. Resolving an already-resolved identity yields the same
// result, so callers may re-normalize freely.
func ResolveIdentity(raw RawPerson) CanonicalIdentity {
	switch raw.Kind {
	case PersonAbsent:
		return CanonicalIdentity{}
	case PersonName:
		return reconcileNames(CanonicalIdentity{Name: strings.TrimSpace(raw.Name)})
	}

	fields := raw.Fields
	identity := CanonicalIdentity{
		ID:        firstNonEmpty(fields.ID.String(), fields.AltID.String()),
		FirstName: firstNonEmpty(fields.FirstName, fields.FirstSnk),
		LastName:  firstNonEmpty(fields.LastName, fields.LastSnk),
		Name:      strings.TrimSpace(fields.Name),
	}

	// A user-nested reference carries the display fields one level down.
	if fields.User != nil {
		nested := ResolveIdentity(PersonFromFields(*fields.User))
		if identity.ID == "" {
			identity.ID = nested.ID
		}
		if identity.FirstName == "" && identity.Name == "" {
			identity.FirstName = nested.FirstName
			identity.LastName = nested.LastName
			identity.Name = nested.Name
		}
	}

	return reconcileNames(identity)
}

// reconcileNames makes Name and FirstName/LastName mutually derivable.
// The split runs on the first space only: first token becomes FirstName,
// the remainder (possibly empty) becomes LastName.
func reconcileNames(identity CanonicalIdentity) CanonicalIdentity {
	if identity.Name == "" && identity.FirstName != "" {
		identity.Name = strings.TrimSpace(identity.FirstName + " " + identity.LastName)
	}
	if identity.Name != "" && identity.FirstName == "" {
		first, rest, _ := strings.Cut(identity.Name, " ")
		identity.FirstName = first
		identity.LastName = strings.TrimSpace(rest)
	}
	return identity
}

// AsRawPerson re-wraps a canonical identity in the object variant, for
// callers that feed normalized data back through the resolver.
func (c CanonicalIdentity) AsRawPerson() RawPerson {
	return PersonFromFields(PersonFields{
		ID:        FlexID(c.ID),
		Name:      c.Name,
		FirstName: c.FirstName,
		LastName:  c.LastName,
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
