package domain

import "errors"

// ErrKeyNotFound is returned by the assuming blackboard accessors when a key is absent.
var ErrKeyNotFound = errors.New("blackboard key not found")

// ErrUnknownNodeType is returned when a type name has no registered constructor.
var ErrUnknownNodeType = errors.New("unknown node type")

// ErrTreeNotFound is returned when a loader has no tree under the requested name.
var ErrTreeNotFound = errors.New("tree not found")

// ErrSnapshotNotFound is returned when a snapshot cannot be found in the store.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrAgentNotFound is returned when an agent ID is not managed.
var ErrAgentNotFound = errors.New("agent not found")

// ErrAgentExists is returned when spawning an agent under an ID already in use.
var ErrAgentExists = errors.New("agent already exists")
