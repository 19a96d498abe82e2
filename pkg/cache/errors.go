package cache

import "errors"

var (
	ErrNotFound        = errors.New("cache.not_found")
	ErrUnknownInstance = errors.New("cache.unknown_instance")
	ErrEmptyKey        = errors.New("cache.empty_key")
	ErrUnknownEngine   = errors.New("cache.unknown_engine")
	ErrInvalidCapacity = errors.New("cache.invalid_capacity")
)
