// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/consts"
)

// digestTag keeps signatures over calls from being valid for any other use of
// the same key.
const digestTag = "upgradevm/call"

// Digest is the message a caller signs to authorize [method] with [args] on
// the instance [instance]. [nonce] must equal the signer's next nonce there.
func Digest(instance ids.ID, nonce uint64, method string, args []byte) ([]byte, error) {
	p := codec.NewWriter(
		len(digestTag)+consts.IDLen+consts.Uint64Len+len(method)+len(args)+3*consts.Uint32Len,
		consts.NetworkSizeLimit,
	)
	p.PackStr(digestTag)
	p.PackID(instance)
	p.PackLong(nonce)
	p.PackStr(method)
	p.PackBytes(args)
	return p.Bytes(), p.Err()
}
