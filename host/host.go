// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ava-labs/upgradevm/auth"
	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/contract"
	"github.com/ava-labs/upgradevm/state"
	"github.com/ava-labs/upgradevm/storage"
	"github.com/ava-labs/upgradevm/trace"
	"github.com/ava-labs/upgradevm/tstate"
)

// Installed describes the code a host currently runs.
type Installed struct {
	Code    ids.ID
	Version uint32
}

// Host runs the installed program against durable storage. It executes one
// invocation at a time; each invocation is committed in full or not at all,
// and a code swap requested by an invocation applies from the next one.
type Host struct {
	log      logging.Logger
	tracer   trace.Tracer
	db       Database
	registry *Registry
	metrics  *metrics

	// lock serializes invocations
	lock    sync.Mutex
	factory ProgramFactory

	instance  ids.ID
	installed atomic.Pointer[Installed]
}

// New opens a host over [db]. If [db] has no installed code yet,
// [defaultCode] is installed and persisted. A database without an instance id
// is assigned a random one.
func New(
	ctx context.Context,
	log logging.Logger,
	tracer trace.Tracer,
	registerer prometheus.Registerer,
	db Database,
	registry *Registry,
	defaultCode ids.ID,
) (*Host, error) {
	metrics, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	h := &Host{
		log:      log,
		tracer:   tracer,
		db:       db,
		registry: registry,
		metrics:  metrics,
	}

	code, ok, err := storage.GetInstalledCode(ctx, state.FromDatabase(db))
	if err != nil {
		return nil, err
	}
	if !ok {
		code = defaultCode
	}
	factory, registered := registry.Get(code)
	if !registered {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCode, code)
	}
	instance, hasInstance, err := storage.GetInstanceID(ctx, state.FromDatabase(db))
	if err != nil {
		return nil, err
	}
	ts := tstate.New(state.FromDatabase(db), 2)
	if !ok {
		if err := storage.SetInstalledCode(ctx, ts, code); err != nil {
			return nil, err
		}
	}
	if !hasInstance {
		if _, err := rand.Read(instance[:]); err != nil {
			return nil, err
		}
		if err := storage.SetInstanceID(ctx, ts, instance); err != nil {
			return nil, err
		}
	}
	if err := h.commit(ts); err != nil {
		return nil, err
	}
	h.instance = instance
	h.install(code, factory)

	count, err := storage.GetCounter(ctx, state.FromDatabase(db))
	if err != nil {
		return nil, err
	}
	h.metrics.counter.Set(float64(count))

	log.Info("host started",
		zap.Stringer("instance", instance),
		zap.Stringer("code", code),
		zap.Uint32("version", h.Installed().Version),
		zap.Bool("fresh", !ok),
	)
	return h, nil
}

// Installed returns the code serving invocations. It does not wait for an
// in-flight invocation.
func (h *Host) Installed() Installed {
	return *h.installed.Load()
}

// InstanceID is the identifier credentials must be bound to.
func (h *Host) InstanceID() ids.ID {
	return h.instance
}

// Codes lists every code reference an upgrade may name.
func (h *Host) Codes() []ids.ID {
	return h.registry.Refs()
}

// Nonce returns the nonce [addr] must sign its next call with.
func (h *Host) Nonce(ctx context.Context, addr codec.Address) (uint64, error) {
	return storage.GetNonce(ctx, state.FromDatabase(h.db), addr)
}

// Invoke executes [c] against the installed program.
func (h *Host) Invoke(ctx context.Context, c Call) (Result, error) {
	ctx, span := h.tracer.Start(ctx, "Host.Invoke", oteltrace.WithAttributes(
		attribute.String("method", c.Method),
		attribute.Bool("signed", c.Auth != nil),
	))
	defer span.End()

	start := time.Now()
	h.lock.Lock()
	result, err := h.invoke(ctx, c)
	h.lock.Unlock()

	h.metrics.observe(methodLabel(c.Method), err, time.Since(start))
	if err != nil {
		span.RecordError(err)
		h.log.Debug("invocation failed",
			zap.String("method", c.Method),
			zap.Error(err),
		)
		return Result{}, err
	}
	return result, nil
}

func (h *Host) invoke(ctx context.Context, c Call) (Result, error) {
	ts := tstate.New(state.FromDatabase(h.db), 3)
	authorizer := auth.Anonymous()
	if c.Auth != nil {
		msg, err := c.Digest(h.instance)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
		}
		authorizer = auth.NewOracle(ts, c.Auth, msg, c.Nonce)
	}

	up := &upgrader{registry: h.registry}
	result, err := dispatch(ctx, h.factory(ts, authorizer, up), c)
	if err != nil {
		return Result{}, err
	}

	if up.pending {
		if err := storage.SetInstalledCode(ctx, ts, up.code); err != nil {
			return Result{}, err
		}
	}
	if err := h.commit(ts); err != nil {
		return Result{}, err
	}

	if c.Method == MethodIncrement {
		h.metrics.counter.Set(float64(result.Value))
	}
	if up.pending {
		previous := h.Installed()
		h.install(up.code, up.factory)
		h.metrics.upgrades.Inc()
		h.log.Info("installed code",
			zap.Stringer("previous", previous.Code),
			zap.Stringer("code", up.code),
			zap.Uint32("version", h.Installed().Version),
		)
	}
	return result, nil
}

func (h *Host) commit(ts *tstate.TState) error {
	if ts.PendingChanges() == 0 {
		return nil
	}
	batch := h.db.NewBatch()
	if err := ts.WriteTo(batch); err != nil {
		return err
	}
	return batch.Write()
}

func (h *Host) install(code ids.ID, factory ProgramFactory) {
	h.factory = factory
	version := factory(state.MutableStorage{}, auth.Anonymous(), nil).Version()
	h.installed.Store(&Installed{Code: code, Version: version})
	h.metrics.installedVersion.Set(float64(version))
}

func (h *Host) Init(ctx context.Context, admin codec.Address) error {
	_, err := h.Invoke(ctx, InitCall(admin))
	return err
}

// Upgrade asks the installed program to replace itself with [code], signing
// the request with [factory].
func (h *Host) Upgrade(ctx context.Context, code ids.ID, factory *auth.ED25519Factory) error {
	nonce, err := h.Nonce(ctx, factory.Address())
	if err != nil {
		return err
	}
	c, err := UpgradeCall(code).Sign(h.instance, nonce, factory)
	if err != nil {
		return err
	}
	_, err = h.Invoke(ctx, c)
	return err
}

func (h *Host) Increment(ctx context.Context) (uint32, error) {
	result, err := h.Invoke(ctx, IncrementCall())
	return result.Value, err
}

func (h *Host) GetCount(ctx context.Context) (uint32, error) {
	result, err := h.Invoke(ctx, GetCountCall())
	return result.Value, err
}

func (h *Host) Version(ctx context.Context) (uint32, error) {
	result, err := h.Invoke(ctx, VersionCall())
	return result.Value, err
}

// Close releases the database. Invocations must not be issued afterwards.
func (h *Host) Close() error {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.db.Close()
}

func methodLabel(method string) string {
	switch method {
	case MethodInit, MethodUpgrade, MethodIncrement, MethodGetCount, MethodVersion:
		return method
	default:
		return "unknown"
	}
}

var _ contract.Upgrader = (*upgrader)(nil)

// upgrader records the code an invocation asked for. The host applies it only
// after the invocation commits.
type upgrader struct {
	registry *Registry

	pending bool
	code    ids.ID
	factory ProgramFactory
}

func (u *upgrader) InstallCode(_ context.Context, code ids.ID) error {
	factory, ok := u.registry.Get(code)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCode, code)
	}
	u.pending = true
	u.code = code
	u.factory = factory
	return nil
}
