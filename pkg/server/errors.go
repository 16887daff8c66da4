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
	"log/slog"
	"net/http"

	cerrors "github.com/iamsank8/portfolio/pkg/errors"
	"github.com/iamsank8/portfolio/pkg/serializer"
)

// Client-facing error messages.
const (
	MessageInternal        = "Something went wrong"
	MessageTooManyRequests = "Too many requests, please try again later."
	MessageBodyTooLarge    = "Request body too large"
	MessageUnauthorized    = "Unauthorized"
	MessageCORSRejected    = "Not allowed by CORS"
)

// WriteError writes {"error": message} with the given status.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	serializer.RespondJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteErrorFromErr logs err and writes the status derived from its code.
// Internal details never reach the client: 5xx responses carry the generic
// message and 4xx responses the status text.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error) {
	code := cerrors.CodeOf(err)
	status := HTTPStatusFromCode(code)

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, "request failed",
		"requestID", RequestID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"code", code,
		"error", err,
	)

	message := MessageInternal
	if status < http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	WriteError(w, status, message)
}

// HTTPStatusFromCode maps an error code to an HTTP status.
func HTTPStatusFromCode(code cerrors.ErrorCode) int {
	switch code {
	case cerrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case cerrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case cerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case cerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case cerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case cerrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case cerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
