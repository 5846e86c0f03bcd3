// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
)

var _ Immutable = (*databaseReader)(nil)

type databaseReader struct {
	db database.KeyValueReader
}

// FromDatabase exposes a committed database as read-only state.
func FromDatabase(db database.KeyValueReader) Immutable {
	return &databaseReader{db: db}
}

func (d *databaseReader) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return d.db.Get(key)
}
