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
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/careviewhq/careview/model"
)

// DefaultNameDrift is the allowable levenshtein drift, as a percentage
// of the longer string, when filtering rows by display name.
const DefaultNameDrift = 30.0

// FilterRowsByName returns the rows whose patient or doctor display name
// approximately matches the query. A blank query matches everything.
func FilterRowsByName(rows []model.Row, query string, allowableDriftPercent float64) []model.Row {
	query = strings.TrimSpace(query)
	if query == "" {
		return rows
	}
	matched := make([]model.Row, 0, len(rows))
	for _, row := range rows {
		if partialMatch(query, row.PatientName, allowableDriftPercent) ||
			partialMatch(query, row.DoctorName, allowableDriftPercent) {
			matched = append(matched, row)
		}
	}
	return matched
}

// partialMatch reports whether two names match approximately: either one
// contains the other, or their levenshtein distance stays within the
// allowed percentage of the longer name's length.
func partialMatch(str1, str2 string, allowableDriftPercent float64) bool {
	if str1 == "" || str2 == "" {
		return false
	}
	str1 = strings.ToLower(str1)
	str2 = strings.ToLower(str2)

	if strings.Contains(str1, str2) || strings.Contains(str2, str1) {
		return true
	}

	distance := levenshtein.DistanceForStrings([]rune(str1), []rune(str2), levenshtein.DefaultOptions)
	maxLength := max(len(str1), len(str2))
	allowedDistance := int(float64(maxLength) * (allowableDriftPercent / 100))

	return distance <= allowedDistance
}
