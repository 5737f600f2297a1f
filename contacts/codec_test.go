package contacts

import (
	"testing"
	"time"

	"github.com/nalgeon/be"
)

func TestSnapshotRoundTrip(t *testing.T) {
	in := []Contact{
		{
			ID:        "c1",
			FirstName: "Max",
			Email:     "max@x.com",
			Tags:      []string{"vip", "lead", "vip"},
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 123456789, time.UTC),
		},
		{
			ID:        "c2",
			FirstName: "Anna",
			LastName:  "Berg",
			Email:     "anna@example.com",
			Tags:      []string{},
			CreatedAt: time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
		},
	}

	data, err := EncodeSnapshot(in)
	be.Err(t, err, nil)

	out, err := DecodeSnapshot(data)
	be.Err(t, err, nil)
	be.Equal(t, out, in)
}

func TestEncodeSnapshotEnvelope(t *testing.T) {
	data, err := EncodeSnapshot([]Contact{{
		ID:        "c1",
		FirstName: "Max",
		Email:     "max@x.com",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}})
	be.Err(t, err, nil)
	be.Equal(t, string(data),
		`{"state":{"contacts":[{"id":"c1","firstName":"Max","lastName":"","email":"max@x.com","tags":[],"createdAt":"2026-01-02T03:04:05Z"}]},"version":0}`)

	empty, err := EncodeSnapshot(nil)
	be.Err(t, err, nil)
	be.Equal(t, string(empty), `{"state":{"contacts":[]},"version":0}`)
}

func TestDecodeBrowserRecord(t *testing.T) {
	record := `{"state":{"contacts":[{"firstName":"Lena","lastName":"Vogel","email":"lena@example.de","tags":["kunde","vip"],"id":"3f1c","createdAt":"2024-05-01T10:00:00.000Z"}]},"version":0}`

	out, err := DecodeSnapshot([]byte(record))
	be.Err(t, err, nil)
	be.Equal(t, len(out), 1)
	be.Equal(t, out[0].ID, "3f1c")
	be.Equal(t, out[0].Tags, []string{"kunde", "vip"})
	be.True(t, out[0].CreatedAt.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
}

func TestDecodeSnapshotRejectsInvalidRecords(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`{"state":{"contacts":[]},"version":1}`))
	be.Err(t, err, "unsupported snapshot version")

	_, err = DecodeSnapshot([]byte(`{"state":{"contacts":[{"id":"a"},{"id":"a"}]},"version":0}`))
	be.Err(t, err, "duplicate id")

	_, err = DecodeSnapshot([]byte(`{"state":{"contacts":[{"firstName":"A"}]},"version":0}`))
	be.Err(t, err, "has no id")

	_, err = DecodeSnapshot([]byte(`[]`))
	be.Err(t, err)
}
