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

// Package careview reconciles inconsistently-shaped records fetched from
// an upstream EMR backend into canonical rows and aggregate statistics
// for role-scoped dashboards. Every load is a fresh reconciliation pass
// over one immutable snapshot; nothing derived is cached or patched in
// place.
package careview

import (
	"context"
	"encoding/json"
	"time"

	"github.com/careviewhq/careview/config"
)

// Collection names served by the records backend.
const (
	CollectionPatients     = "patients"
	CollectionDoctors      = "doctors"
	CollectionAppointments = "appointments"
	CollectionInvoices     = "invoices"
	CollectionLabReports   = "lab_reports"
)

// CollectionSource fetches one named raw collection. Implementations own
// transport concerns (retries, caching); the engine only sees a complete
// payload or a single error.
type CollectionSource interface {
	Fetch(ctx context.Context, collection string) (json.RawMessage, error)
}

// Clock supplies "now" for date bucketing. Injected so today/this-month
// aggregates are deterministic under test.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Careview is the reconciliation engine. It holds no per-pass state;
// concurrent passes are independent.
type Careview struct {
	source   CollectionSource
	clock    Clock
	rowLimit int
}

// NewCareview creates an engine over the given collection source, using
// display settings from the loaded configuration.
func NewCareview(source CollectionSource) (*Careview, error) {
	cnf, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	return &Careview{
		source:   source,
		clock:    realClock{},
		rowLimit: cnf.Display.UpcomingLimit,
	}, nil
}

// WithClock replaces the engine's clock. Tests pin a fixed instant so
// today/this-month aggregates are reproducible.
func (c *Careview) WithClock(clock Clock) *Careview {
	c.clock = clock
	return c
}

// location returns the observer's timezone, taken from the clock so test
// doubles can pin a fixed offset.
func (c *Careview) location() *time.Location {
	return c.clock.Now().Location()
}
