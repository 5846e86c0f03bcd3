// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/upgradevm/pebble"
)

// New opens the pebble database stored under [dataDir]/[namespace]. The
// returned gatherer serves the database's metrics.
func New(cfg pebble.Config, dataDir string, namespace string) (*pebble.Database, prometheus.Gatherer, error) {
	path := filepath.Join(dataDir, namespace)
	if err := os.MkdirAll(path, perms.ReadWriteExecute); err != nil {
		return nil, nil, err
	}
	return pebble.New(path, cfg)
}
