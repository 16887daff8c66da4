// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	cerrors "github.com/iamsank8/portfolio/pkg/errors"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		name string
		code cerrors.ErrorCode
		want int
	}{
		{"invalid request", cerrors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{"unauthorized", cerrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{"not found", cerrors.ErrCodeNotFound, http.StatusNotFound},
		{"method not allowed", cerrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{"rate limit", cerrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{"unavailable", cerrors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"timeout", cerrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{"internal", cerrors.ErrCodeInternal, http.StatusInternalServerError},
		{"unknown defaults to internal", cerrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusFromCode(tt.code); got != tt.want {
				t.Fatalf("HTTPStatusFromCode(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestWriteError_WritesErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusBadRequest, "bad request")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != "bad request" {
		t.Fatalf("expected error %q, got %q", "bad request", resp.Error)
	}
}

func TestWriteErrorFromErr_HidesInternalDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	cause := errors.New("db is down")
	err := cerrors.WrapWithContext(cerrors.ErrCodeUnavailable, "store unavailable", cause, map[string]any{"component": "db"})

	WriteErrorFromErr(w, req, err)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}

	var resp ErrorResponse
	if uerr := json.Unmarshal(w.Body.Bytes(), &resp); uerr != nil {
		t.Fatalf("failed to unmarshal response: %v", uerr)
	}
	if resp.Error != MessageInternal {
		t.Fatalf("expected generic message, got %q", resp.Error)
	}
}

func TestWriteErrorFromErr_ClientErrorUsesStatusText(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	WriteErrorFromErr(w, req, cerrors.New(cerrors.ErrCodeUnauthorized, "token expired"))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != "Unauthorized" {
		t.Fatalf("expected %q, got %q", "Unauthorized", resp.Error)
	}
}

func TestWriteErrorFromErr_NonStructuredFallsBackToInternal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	WriteErrorFromErr(w, req, errors.New("boom"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}
