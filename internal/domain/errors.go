package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotConnected indicates the player IPC connection is not established or was closed
	ErrNotConnected = errors.New("player is not connected")

	// ErrPlayerNotFound indicates no usable media player could be launched
	ErrPlayerNotFound = errors.New("no media player found")

	// ErrMediaNotFound indicates the requested media file does not exist
	ErrMediaNotFound = errors.New("media not found")

	// ErrInvalidConfig indicates a configuration value is out of range
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrIPCTimeout indicates the player did not answer an IPC request in time
	ErrIPCTimeout = errors.New("player did not respond")
)
