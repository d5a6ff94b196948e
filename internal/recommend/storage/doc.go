// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package storage provides the durable backend for the recommendation
// core's persisted-state keyspace: Q-table entries, exploration state,
// experience records, and pending sessions.
//
// # Overview
//
// The core only ever talks to the recommend.Store interface (Get, Put,
// Range); this package supplies the default implementation on top of
// an embedded BadgerDB instance so the service runs with no external
// database dependency.
//
// # Storage Format
//
// Every value is wrapped in a small envelope before it reaches Badger:
// a gzip-compressed payload prefixed by the hex SHA-256 checksum of the
// uncompressed bytes. Corruption is caught on read, not silently
// propagated into a user's policy.
//
// # Usage
//
//	store, err := storage.Open("/data/recommend")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	var core recommend.Store = store
//
// # Thread Safety
//
// BadgerStore delegates all concurrency control to BadgerDB's MVCC
// transactions; Get/Put/Range are safe for concurrent use from any
// number of goroutines.
package storage
