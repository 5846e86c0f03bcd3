// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/upgradevm/contract"
	"github.com/ava-labs/upgradevm/host"
)

var ErrInvalidSigner = errors.New("invalid signer")

// remoteErrs are the failures a client can recognize in a server reply.
var remoteErrs = []error{
	contract.ErrAlreadyInitialized,
	contract.ErrUninitialized,
	contract.ErrUnauthorized,
	contract.ErrCounterOverflow,
	host.ErrUnknownCode,
	host.ErrInvalidArgs,
	host.ErrUnknownMethod,
	ErrInvalidSigner,
}

// wrapRemote attaches the matching sentinel to an error decoded from a reply,
// so callers can use [errors.Is] across the wire.
func wrapRemote(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, target := range remoteErrs {
		if strings.Contains(msg, target.Error()) {
			return fmt.Errorf("%w: %w", target, err)
		}
	}
	return err
}
