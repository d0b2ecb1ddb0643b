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
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// MockSource is an in-memory CollectionSource backed by a fixture map.
// Setting mockFetch overrides individual lookups.
type MockSource struct {
	Collections map[string]json.RawMessage
	mockFetch   func(ctx context.Context, collection string) (json.RawMessage, error)
}

func (m *MockSource) Fetch(ctx context.Context, collection string) (json.RawMessage, error) {
	if m.mockFetch != nil {
		return m.mockFetch(ctx, collection)
	}
	raw, ok := m.Collections[collection]
	if !ok {
		return nil, errors.Errorf("no fixture for collection %q", collection)
	}
	return raw, nil
}
