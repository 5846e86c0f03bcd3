// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/upgradevm/consts"
)

// Packer is a wrapper struct for the Packer struct
// from avalanchego/utils/wrappers/packing.go. It adds the
// types used by upgradevm calls.
type Packer struct {
	p *wrappers.Packer
}

// NewReader returns a Packer instance that reads from [src] and
// refuses to read past [limit] bytes.
func NewReader(src []byte, limit int) *Packer {
	return &Packer{p: &wrappers.Packer{Bytes: src, MaxSize: limit}}
}

// NewWriter returns a Packer instance with an initial size of [initial] and a
// maximum size of [limit].
func NewWriter(initial, limit int) *Packer {
	return &Packer{p: &wrappers.Packer{Bytes: make([]byte, 0, initial), MaxSize: limit}}
}

func (p *Packer) PackByte(b byte) {
	p.p.PackByte(b)
}

func (p *Packer) UnpackByte() byte {
	return p.p.UnpackByte()
}

func (p *Packer) PackInt(v uint32) {
	p.p.PackInt(v)
}

func (p *Packer) UnpackInt() uint32 {
	return p.p.UnpackInt()
}

func (p *Packer) PackLong(v uint64) {
	p.p.PackLong(v)
}

func (p *Packer) UnpackLong() uint64 {
	return p.p.UnpackLong()
}

func (p *Packer) PackStr(s string) {
	p.p.PackStr(s)
}

func (p *Packer) UnpackStr() string {
	return p.p.UnpackStr()
}

func (p *Packer) PackBytes(b []byte) {
	p.p.PackBytes(b)
}

func (p *Packer) UnpackBytes() []byte {
	return p.p.UnpackBytes()
}

func (p *Packer) PackID(id ids.ID) {
	p.p.PackFixedBytes(id[:])
}

func (p *Packer) UnpackID(dest *ids.ID) {
	copy((*dest)[:], p.p.UnpackFixedBytes(consts.IDLen))
}

func (p *Packer) PackAddress(a Address) {
	p.p.PackFixedBytes(a[:])
}

func (p *Packer) UnpackAddress(dest *Address) {
	copy((*dest)[:], p.p.UnpackFixedBytes(AddressLen))
}

func (p *Packer) Bytes() []byte {
	return p.p.Bytes
}

// Empty returns true if every byte of the source has been read.
func (p *Packer) Empty() bool {
	return p.p.Offset == len(p.p.Bytes)
}

func (p *Packer) Err() error {
	return p.p.Err
}
