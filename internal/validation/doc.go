// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with user-friendly error messages. It integrates
// with the recommendation API's error envelope for consistent error responses.
//
// # Quick Start
//
//	type recommendRequest struct {
//	    UserID string `validate:"required"`
//	    K      int    `validate:"omitempty,gte=1,lte=50"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    var req recommendRequest
//	    if err := json.Decode(r.Body, &req); err != nil {
//	        // handle decode error
//	    }
//
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        writeValidationError(NewResponseWriter(w, r), verr)
//	        return
//	    }
//
//	    // proceed with valid request
//	}
//
// # Common Validation Tags
//
//   - required: field must not be zero-valued
//   - min=n / max=n: length (strings) or value bounds (numbers)
//   - gte=n / lte=n / gt=n / lt=n: numeric bounds, used for affect vector
//     components (must fall in [-1, 1]) and requested result counts
//   - oneof=a b c: must be one of the specified values
//
// # Error Types
//
// ValidationError represents a single field validation failure; a failed
// struct validation aggregates these into a RequestValidationError, whose
// ToAPIError method produces the {code, message, details} shape used by
// the recommendation handlers' error envelope.
//
// # Thread Safety
//
// The singleton validator is initialized once and is safe for concurrent use.
//
// # See Also
//
//   - internal/api/handlers_recommend.go: request DTOs using these tags
//   - github.com/go-playground/validator/v10: underlying library
package validation
