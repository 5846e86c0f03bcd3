// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"strings"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/upgradevm/auth"
	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/host"
	"github.com/ava-labs/upgradevm/requester"
)

type JSONRPCClient struct {
	requester *requester.EndpointRequester

	instance ids.ID // cached
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	req := requester.New(uri, Name)
	return &JSONRPCClient{requester: req}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		"ping",
		struct{}{},
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) Init(ctx context.Context, admin codec.Address) error {
	err := cli.requester.SendRequest(
		ctx,
		"init",
		&InitArgs{Admin: admin},
		new(struct{}),
	)
	return wrapRemote(err)
}

// Upgrade signs the request for [code] with [factory]'s next nonce and
// submits it.
func (cli *JSONRPCClient) Upgrade(ctx context.Context, code ids.ID, factory *auth.ED25519Factory) error {
	instance, err := cli.InstanceID(ctx)
	if err != nil {
		return err
	}
	nonce, err := cli.Nonce(ctx, factory.Address())
	if err != nil {
		return err
	}
	c, err := host.UpgradeCall(code).Sign(instance, nonce, factory)
	if err != nil {
		return err
	}
	err = cli.requester.SendRequest(
		ctx,
		"upgrade",
		&UpgradeArgs{
			CodeRef: code,
			Nonce:   c.Nonce,
			Auth:    c.Auth.Bytes(),
		},
		new(struct{}),
	)
	return wrapRemote(err)
}

func (cli *JSONRPCClient) Increment(ctx context.Context) (uint32, error) {
	resp := new(CountReply)
	err := cli.requester.SendRequest(
		ctx,
		"increment",
		struct{}{},
		resp,
	)
	return resp.Count, wrapRemote(err)
}

func (cli *JSONRPCClient) GetCount(ctx context.Context) (uint32, error) {
	resp := new(CountReply)
	err := cli.requester.SendRequest(
		ctx,
		"getCount",
		struct{}{},
		resp,
	)
	return resp.Count, wrapRemote(err)
}

func (cli *JSONRPCClient) Version(ctx context.Context) (uint32, error) {
	resp := new(VersionReply)
	err := cli.requester.SendRequest(
		ctx,
		"version",
		struct{}{},
		resp,
	)
	return resp.Version, wrapRemote(err)
}

func (cli *JSONRPCClient) Installed(ctx context.Context) (ids.ID, uint32, error) {
	resp := new(InstalledReply)
	err := cli.requester.SendRequest(
		ctx,
		"installed",
		struct{}{},
		resp,
	)
	return resp.CodeRef, resp.Version, err
}

func (cli *JSONRPCClient) Codes(ctx context.Context) ([]ids.ID, error) {
	resp := new(CodesReply)
	err := cli.requester.SendRequest(
		ctx,
		"codes",
		struct{}{},
		resp,
	)
	return resp.Codes, err
}

func (cli *JSONRPCClient) InstanceID(ctx context.Context) (ids.ID, error) {
	if cli.instance != ids.Empty {
		return cli.instance, nil
	}

	resp := new(InstanceIDReply)
	err := cli.requester.SendRequest(
		ctx,
		"instanceID",
		struct{}{},
		resp,
	)
	if err != nil {
		return ids.Empty, err
	}
	cli.instance = resp.InstanceID
	return resp.InstanceID, nil
}

func (cli *JSONRPCClient) Nonce(ctx context.Context, addr codec.Address) (uint64, error) {
	resp := new(NonceReply)
	err := cli.requester.SendRequest(
		ctx,
		"nonce",
		&NonceArgs{Address: addr},
		resp,
	)
	return resp.Nonce, err
}
