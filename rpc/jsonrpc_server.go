// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/upgradevm/auth"
	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/host"
	"github.com/ava-labs/upgradevm/trace"
)

type JSONRPCServer struct {
	log    logging.Logger
	tracer trace.Tracer
	host   Host
}

func NewJSONRPCServer(log logging.Logger, tracer trace.Tracer, h Host) *JSONRPCServer {
	return &JSONRPCServer{
		log:    log,
		tracer: tracer,
		host:   h,
	}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.log.Info("ping")
	reply.Success = true
	return nil
}

type InitArgs struct {
	Admin codec.Address `json:"admin"`
}

func (j *JSONRPCServer) Init(req *http.Request, args *InitArgs, _ *struct{}) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Init")
	defer span.End()

	_, err := j.host.Invoke(ctx, host.InitCall(args.Admin))
	return err
}

// UpgradeArgs carries the serialized [auth.ED25519] credential in [Auth].
type UpgradeArgs struct {
	CodeRef ids.ID      `json:"codeRef"`
	Nonce   uint64      `json:"nonce"`
	Auth    codec.Bytes `json:"auth"`
}

func (j *JSONRPCServer) Upgrade(req *http.Request, args *UpgradeArgs, _ *struct{}) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Upgrade")
	defer span.End()

	c := host.UpgradeCall(args.CodeRef)
	c.Nonce = args.Nonce
	if len(args.Auth) > 0 {
		cred, err := auth.UnmarshalED25519(args.Auth)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSigner, err)
		}
		c.Auth = cred
	}
	if _, err := j.host.Invoke(ctx, c); err != nil {
		return err
	}
	j.log.Info("upgrade applied",
		zap.Stringer("code", args.CodeRef),
	)
	return nil
}

type CountReply struct {
	Count uint32 `json:"count"`
}

func (j *JSONRPCServer) Increment(req *http.Request, _ *struct{}, reply *CountReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Increment")
	defer span.End()

	result, err := j.host.Invoke(ctx, host.IncrementCall())
	if err != nil {
		return err
	}
	reply.Count = result.Value
	return nil
}

func (j *JSONRPCServer) GetCount(req *http.Request, _ *struct{}, reply *CountReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.GetCount")
	defer span.End()

	result, err := j.host.Invoke(ctx, host.GetCountCall())
	if err != nil {
		return err
	}
	reply.Count = result.Value
	return nil
}

type VersionReply struct {
	Version uint32 `json:"version"`
}

func (j *JSONRPCServer) Version(req *http.Request, _ *struct{}, reply *VersionReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Version")
	defer span.End()

	result, err := j.host.Invoke(ctx, host.VersionCall())
	if err != nil {
		return err
	}
	reply.Version = result.Value
	return nil
}

type InstalledReply struct {
	CodeRef ids.ID `json:"codeRef"`
	Version uint32 `json:"version"`
}

func (j *JSONRPCServer) Installed(_ *http.Request, _ *struct{}, reply *InstalledReply) error {
	installed := j.host.Installed()
	reply.CodeRef = installed.Code
	reply.Version = installed.Version
	return nil
}

type CodesReply struct {
	Codes []ids.ID `json:"codes"`
}

func (j *JSONRPCServer) Codes(_ *http.Request, _ *struct{}, reply *CodesReply) error {
	reply.Codes = j.host.Codes()
	return nil
}

type InstanceIDReply struct {
	InstanceID ids.ID `json:"instanceID"`
}

func (j *JSONRPCServer) InstanceID(_ *http.Request, _ *struct{}, reply *InstanceIDReply) error {
	reply.InstanceID = j.host.InstanceID()
	return nil
}

type NonceArgs struct {
	Address codec.Address `json:"address"`
}

type NonceReply struct {
	Nonce uint64 `json:"nonce"`
}

func (j *JSONRPCServer) Nonce(req *http.Request, args *NonceArgs, reply *NonceReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Nonce")
	defer span.End()

	nonce, err := j.host.Nonce(ctx, args.Address)
	if err != nil {
		return err
	}
	reply.Nonce = nonce
	return nil
}
