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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/careviewhq/careview/model"
)

func searchRows() []model.Row {
	return []model.Row{
		{ID: "a1", PatientName: "Ada Obi", DoctorName: "Dr. Tunde Bello"},
		{ID: "a2", PatientName: "Chidi Eze", DoctorName: "Dr. Ngozi Ike"},
		{ID: "a3", PatientName: "Adaeze Obi", DoctorName: "Dr. Tunde Bello"},
	}
}

func TestFilterRowsByName(t *testing.T) {
	rows := searchRows()

	t.Run("blank query keeps everything", func(t *testing.T) {
		assert.Len(t, FilterRowsByName(rows, "   ", DefaultNameDrift), 3)
	})

	t.Run("substring match on patient", func(t *testing.T) {
		got := FilterRowsByName(rows, "ada", DefaultNameDrift)
		assert.Len(t, got, 2)
		assert.Equal(t, "a1", got[0].ID)
		assert.Equal(t, "a3", got[1].ID)
	})

	t.Run("match on doctor is case-insensitive", func(t *testing.T) {
		got := FilterRowsByName(rows, "NGOZI", DefaultNameDrift)
		assert.Len(t, got, 1)
		assert.Equal(t, "a2", got[0].ID)
	})

	t.Run("small typo still matches", func(t *testing.T) {
		got := FilterRowsByName(rows, "Chidi Ezo", DefaultNameDrift)
		assert.Len(t, got, 1)
		assert.Equal(t, "a2", got[0].ID)
	})

	t.Run("unrelated query matches nothing", func(t *testing.T) {
		assert.Empty(t, FilterRowsByName(rows, "zzzzzzzzzz", 10))
	})
}

func TestPartialMatch(t *testing.T) {
	assert.True(t, partialMatch("tunde", "Dr. Tunde Bello", DefaultNameDrift))
	assert.True(t, partialMatch("Ada Obi", "Adu Obi", DefaultNameDrift))
	assert.False(t, partialMatch("", "Ada Obi", DefaultNameDrift))
	assert.False(t, partialMatch("completely different", "Ada Obi", 10))
}
