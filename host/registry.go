// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"bytes"
	"fmt"
	"slices"
	"sync"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"golang.org/x/exp/maps"

	"github.com/ava-labs/upgradevm/contract"
)

// ContractCode references the contract revision compiled into this binary.
var ContractCode = CodeRef([]byte(fmt.Sprintf("upgradevm/contract/v%d", contract.Version)))

// CodeRef returns the reference a host uses to identify [code].
func CodeRef(code []byte) ids.ID {
	return ids.ID(hashing.ComputeHash256Array(code))
}

// Registry holds every program a host is able to install.
type Registry struct {
	lock     sync.RWMutex
	programs map[ids.ID]ProgramFactory
}

func NewRegistry() *Registry {
	return &Registry{programs: make(map[ids.ID]ProgramFactory)}
}

// NewDefaultRegistry returns a registry holding [ContractCode].
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.programs[ContractCode] = NewContract
	return r
}

func (r *Registry) Register(code ids.ID, factory ProgramFactory) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.programs[code]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCode, code)
	}
	r.programs[code] = factory
	return nil
}

func (r *Registry) Get(code ids.ID) (ProgramFactory, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	factory, ok := r.programs[code]
	return factory, ok
}

// Refs returns every registered reference in byte order.
func (r *Registry) Refs() []ids.ID {
	r.lock.RLock()
	refs := maps.Keys(r.programs)
	r.lock.RUnlock()

	slices.SortFunc(refs, func(a, b ids.ID) int {
		return bytes.Compare(a[:], b[:])
	})
	return refs
}
