// Package model contains the resource payloads exchanged over HTTP and persisted by
// the repositories. Every payload field is a pointer so that an absent or null JSON
// value can be told apart from a zero value.
package model

// Entity is implemented by the pointer type of every resource payload.
type Entity[D any] interface {
	*D
	// GetID returns the server-assigned identifier, nil when not yet assigned.
	GetID() *int64
	// SetID assigns the identifier.
	SetID(id int64)
	// Merge copies every non-nil field of patch onto the receiver.
	Merge(patch *D)
}

func mergeField[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
