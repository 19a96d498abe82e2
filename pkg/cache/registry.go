package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultInstance is the instance name used when none is configured.
const DefaultInstance = "default"

// Instance is a named cache profile: a backend plus its expiry policy and key namespace.
type Instance struct {
	Backend  Backend
	Duration time.Duration // entry lifetime, refreshed on every Set; 0 means no expiry
	Prefix   string        // prepended to every key
}

// InstanceOption configures an Instance on registration.
type InstanceOption func(*Instance)

// WithDuration sets how long entries written through the instance live.
func WithDuration(d time.Duration) InstanceOption {
	return func(i *Instance) {
		i.Duration = d
	}
}

// WithPrefix sets the key namespace of the instance.
func WithPrefix(prefix string) InstanceOption {
	return func(i *Instance) {
		i.Prefix = prefix
	}
}

// Registry routes cache operations to named instances.
type Registry struct {
	mu        sync.RWMutex
	instances map[string]Instance
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{instances: make(map[string]Instance)}
}

// Register adds or replaces the instance called name.
// It panics on a nil backend: a registry pointing at nothing is a wiring bug.
func (r *Registry) Register(name string, backend Backend, opts ...InstanceOption) {
	if backend == nil {
		panic("cache: nil backend for instance " + name)
	}

	inst := Instance{Backend: backend}
	for _, opt := range opts {
		opt(&inst)
	}

	r.mu.Lock()
	r.instances[name] = inst
	r.mu.Unlock()
}

// Instance returns the instance registered as name.
func (r *Registry) Instance(name string) (Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[name]
	return inst, ok
}

// Get reads key from instance. A miss returns ErrNotFound.
func (r *Registry) Get(ctx context.Context, key, instance string) ([]byte, error) {
	inst, err := r.lookup(instance)
	if err != nil {
		return nil, err
	}
	return inst.Backend.Get(ctx, inst.Prefix+key)
}

// Set writes key to instance with the instance's duration.
func (r *Registry) Set(ctx context.Context, key string, value []byte, instance string) error {
	inst, err := r.lookup(instance)
	if err != nil {
		return err
	}
	return inst.Backend.Set(ctx, inst.Prefix+key, value, inst.Duration)
}

// Delete removes key from instance. Missing keys are not an error.
func (r *Registry) Delete(ctx context.Context, key, instance string) error {
	inst, err := r.lookup(instance)
	if err != nil {
		return err
	}
	if err := inst.Backend.Delete(ctx, inst.Prefix+key); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func (r *Registry) lookup(name string) (Instance, error) {
	inst, ok := r.Instance(name)
	if !ok {
		return Instance{}, fmt.Errorf("%w: %q", ErrUnknownInstance, name)
	}
	return inst, nil
}
