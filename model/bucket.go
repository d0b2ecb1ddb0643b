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

import "time"

const dayKeyLayout = "2006-01-02"

// DayKey maps a timestamp to its calendar day in loc, as a YYYY-MM-DD
// string comparable by equality. Two timestamps on the same local
// calendar day always produce the same key regardless of time of day or
// UTC offset; a record stored just before midnight UTC still buckets
// into the viewer's local day. The zero time yields "" which never
// equals a real key.
func DayKey(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dayKeyLayout)
}

// MonthYear returns the calendar month (1-12) and year of t in loc.
// The zero time yields (0, 0), which never equals a real period.
func MonthYear(t time.Time, loc *time.Location) (int, int) {
	if t.IsZero() {
		return 0, 0
	}
	if loc == nil {
		loc = time.Local
	}
	local := t.In(loc)
	return int(local.Month()), local.Year()
}
