// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import "errors"

// Sentinel errors returned by the engine. Handlers map these to the
// stable E003/E005/E010 error codes and their documented detail reasons.
var (
	// ErrCatalogEmpty reports an empty catalog. Engine.Recommend does not
	// return it: an empty vector index yields an empty list and a nil
	// error. The HTTP layer maps it to a 400 with reason catalog_empty.
	ErrCatalogEmpty = errors.New("recommend: catalog is empty")

	// ErrNoPendingSession is returned by Feedback when no recommendation
	// is pending for (user, content).
	ErrNoPendingSession = errors.New("recommend: no pending recommendation for this item")

	// ErrStateOutOfRange is returned when an affect state fails
	// validation.
	ErrStateOutOfRange = errors.New("recommend: state value out of range")

	// ErrOracleUnavailable is returned when the affect oracle's circuit
	// breaker is open or every retry attempt failed.
	ErrOracleUnavailable = errors.New("recommend: affect oracle unavailable")

	// ErrStoreUnavailable is returned when the durable store rejects a
	// read or write needed to complete the request.
	ErrStoreUnavailable = errors.New("recommend: durable store unavailable")

	// ErrUserBusy is returned when a per-user lock could not be
	// acquired within the configured wait threshold.
	ErrUserBusy = errors.New("recommend: user request already in progress")
)
