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

// Package source fetches raw collections from the records backend. The
// reconciliation engine never talks HTTP itself; retries and response
// caching live here, behind the CollectionSource seam.
package source

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/careviewhq/careview/internal/cache"
	"github.com/careviewhq/careview/internal/request"
)

const cacheKeyPrefix = "careview:collection:"

// HTTPSource fetches collections as JSON arrays from a REST backend.
// Transient upstream failures are retried with exponential backoff;
// 4xx responses are not retried.
type HTTPSource struct {
	baseURL       string
	timeout       time.Duration
	maxRetries    uint64
	retryInterval time.Duration
	cache         cache.Cache
	cacheTTL      time.Duration
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL:       strings.TrimRight(baseURL, "/"),
		timeout:       timeout,
		maxRetries:    3,
		retryInterval: 500 * time.Millisecond,
	}
}

// WithCache enables short-TTL caching of raw collection payloads. Only
// the transport response is cached; derived view-models never are.
func (s *HTTPSource) WithCache(c cache.Cache, ttl time.Duration) *HTTPSource {
	s.cache = c
	s.cacheTTL = ttl
	return s
}

// Fetch retrieves one named collection. The returned payload is the raw
// JSON array as served by the backend.
func (s *HTTPSource) Fetch(ctx context.Context, collection string) (json.RawMessage, error) {
	key := cacheKeyPrefix + collection
	if s.cache != nil {
		var cached json.RawMessage
		if err := s.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	operation := func() (json.RawMessage, error) {
		return s.fetchOnce(ctx, collection)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.retryInterval
	payload, err := backoff.RetryWithData(operation, backoff.WithContext(backoff.WithMaxRetries(bo, s.maxRetries), ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "fetching collection %q", collection)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
			logrus.Warnf("failed to cache collection %q: %v", collection, err)
		}
	}
	return payload, nil
}

func (s *HTTPSource) fetchOnce(ctx context.Context, collection string) (json.RawMessage, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, s.baseURL+"/"+collection, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	var payload json.RawMessage
	resp, err := request.Call(req, &payload)
	if err != nil {
		if resp != nil && resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, backoff.Permanent(errors.Errorf("collection %q: upstream returned %d", collection, resp.StatusCode))
		}
		return nil, err
	}
	if resp.StatusCode >= 500 {
		return nil, errors.Errorf("collection %q: upstream returned %d", collection, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, backoff.Permanent(errors.Errorf("collection %q: upstream returned %d", collection, resp.StatusCode))
	}
	return payload, nil
}
