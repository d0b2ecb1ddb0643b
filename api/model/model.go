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
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/careviewhq/careview/model"
)

// DashboardRequest identifies the logged-in subject for a scoped
// dashboard. ProfileID is the doctor/patient profile row id; AccountID
// the login account id. Either key alone is enough to attribute records.
type DashboardRequest struct {
	AccountID string `json:"account_id"`
	ProfileID string `json:"profile_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Name      string `json:"name"`
}

func atLeastOneKeyValidation(d *DashboardRequest) validation.RuleFunc {
	return func(value interface{}) error {
		if d.AccountID == "" && d.ProfileID == "" {
			return errors.New("either account_id or profile_id is required")
		}
		return nil
	}
}

func (d *DashboardRequest) ValidateDashboardRequest() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.ProfileID, validation.By(atLeastOneKeyValidation(d))),
	)
}

// ToSubjectContext builds the matcher's subject context, resolving the
// supplied name fragments into a canonical identity.
func (d *DashboardRequest) ToSubjectContext(role model.Role) model.SubjectContext {
	identity := model.ResolveIdentity(model.PersonFromFields(model.PersonFields{
		ID:        model.FlexID(d.ProfileID),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Name:      d.Name,
	}))
	return model.SubjectContext{
		Role:      role,
		AccountID: d.AccountID,
		ProfileID: d.ProfileID,
		Identity:  identity,
	}
}
