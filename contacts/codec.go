package contacts

import (
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotVersion is the envelope version written by EncodeSnapshot.
const SnapshotVersion = 0

type snapshotEnvelope struct {
	State   snapshotState `json:"state"`
	Version int           `json:"version"`
}

type snapshotState struct {
	Contacts []storedContact `json:"contacts"`
}

type storedContact struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

// EncodeSnapshot serializes the full collection as one record.
//
// The layout matches the browser store envelope:
//
//	{"state":{"contacts":[...]},"version":0}
func EncodeSnapshot(contacts []Contact) ([]byte, error) {
	envelope := snapshotEnvelope{
		State:   snapshotState{Contacts: make([]storedContact, 0, len(contacts))},
		Version: SnapshotVersion,
	}
	for _, contact := range contacts {
		envelope.State.Contacts = append(envelope.State.Contacts, storedContact{
			ID:        contact.ID,
			FirstName: contact.FirstName,
			LastName:  contact.LastName,
			Email:     contact.Email,
			Tags:      cloneTags(contact.Tags),
			CreatedAt: contact.CreatedAt,
		})
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("contacts: encoding snapshot failed: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a record written by EncodeSnapshot.
func DecodeSnapshot(data []byte) ([]Contact, error) {
	var envelope snapshotEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("contacts: decoding snapshot failed: %w", err)
	}
	if envelope.Version > SnapshotVersion {
		return nil, fmt.Errorf("contacts: unsupported snapshot version %d", envelope.Version)
	}

	seen := make(map[string]struct{}, len(envelope.State.Contacts))
	out := make([]Contact, 0, len(envelope.State.Contacts))
	for i, stored := range envelope.State.Contacts {
		if stored.ID == "" {
			return nil, fmt.Errorf("contacts: snapshot contact %d has no id", i)
		}
		if _, ok := seen[stored.ID]; ok {
			return nil, fmt.Errorf("contacts: snapshot contains duplicate id %q", stored.ID)
		}
		seen[stored.ID] = struct{}{}
		out = append(out, Contact{
			ID:        stored.ID,
			FirstName: stored.FirstName,
			LastName:  stored.LastName,
			Email:     stored.Email,
			Tags:      cloneTags(stored.Tags),
			CreatedAt: stored.CreatedAt,
		})
	}
	return out, nil
}
