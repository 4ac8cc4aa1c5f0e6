package board

import "github.com/google/uuid"

// EventKind identifies what changed in the store.
type EventKind string

const (
	// EventLoading is emitted when a wholesale load begins with the
	// spinner option set.
	EventLoading EventKind = "loading"
	// EventLoaded is emitted after a wholesale load replaced the store.
	EventLoaded EventKind = "loaded"
	// EventChanged is emitted after any incremental mutation.
	EventChanged EventKind = "changed"
	// EventMutationFailed is emitted when a remote call failed and the
	// speculative state was rolled back. Message is human-readable and
	// suitable for an inline error banner.
	EventMutationFailed EventKind = "mutation_failed"
)

// Event is delivered to store subscribers on every state transition.
type Event struct {
	Kind    EventKind
	Message string
	TaskID  uuid.UUID
}

// SyncState tags a board task as speculative or server-confirmed.
type SyncState string

const (
	StatePending   SyncState = "pending"
	StateConfirmed SyncState = "confirmed"
)
