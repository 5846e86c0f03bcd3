// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/crypto"
	"github.com/ava-labs/upgradevm/crypto/ed25519"
)

const ED25519Size = 1 + ed25519.PublicKeyLen + ed25519.SignatureLen

// ED25519 is the credential a caller attaches to an invocation.
type ED25519 struct {
	Signer    ed25519.PublicKey `json:"signer"`
	Signature ed25519.Signature `json:"signature"`

	addr codec.Address
}

func (d *ED25519) address() codec.Address {
	if d.addr == codec.EmptyAddress {
		d.addr = NewED25519Address(d.Signer)
	}
	return d.addr
}

func (*ED25519) GetTypeID() uint8 {
	return ED25519ID
}

// Verify returns [crypto.ErrInvalidSignature] unless [Signature] signs [msg]
// under [Signer].
func (d *ED25519) Verify(_ context.Context, msg []byte) error {
	if !ed25519.Verify(msg, d.Signer, d.Signature) {
		return crypto.ErrInvalidSignature
	}
	return nil
}

// Actor is the address the credential proves control of.
func (d *ED25519) Actor() codec.Address {
	return d.address()
}

func (d *ED25519) Bytes() []byte {
	b := make([]byte, ED25519Size)
	b[0] = ED25519ID
	copy(b[1:], d.Signer[:])
	copy(b[1+ed25519.PublicKeyLen:], d.Signature[:])
	return b
}

func UnmarshalED25519(bytes []byte) (*ED25519, error) {
	if len(bytes) != ED25519Size {
		return nil, fmt.Errorf("%w: %d != %d", ErrInvalidAuthSize, len(bytes), ED25519Size)
	}
	if bytes[0] != ED25519ID {
		return nil, fmt.Errorf("%w: unexpected ed25519 typeID %d", ErrInvalidKeyType, bytes[0])
	}

	var d ED25519
	copy(d.Signer[:], bytes[1:])
	copy(d.Signature[:], bytes[1+ed25519.PublicKeyLen:])
	return &d, nil
}

type ED25519Factory struct {
	priv ed25519.PrivateKey
}

func NewED25519Factory(priv ed25519.PrivateKey) *ED25519Factory {
	return &ED25519Factory{priv}
}

func (d *ED25519Factory) Sign(msg []byte) *ED25519 {
	sig := ed25519.Sign(msg, d.priv)
	return &ED25519{Signer: d.priv.PublicKey(), Signature: sig}
}

func (d *ED25519Factory) Address() codec.Address {
	return NewED25519Address(d.priv.PublicKey())
}

func NewED25519Address(pk ed25519.PublicKey) codec.Address {
	return codec.CreateAddress(ED25519ID, ids.ID(hashing.ComputeHash256Array(pk[:])))
}
