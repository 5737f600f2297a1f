package views

import (
	"context"
	"testing"

	"github.com/nalgeon/be"

	"github.com/spachava753/crm/contacts"
)

type memStore map[string][]byte

func (s memStore) Load(_ context.Context, namespace string) ([]byte, error) {
	data, ok := s[namespace]
	if !ok {
		return nil, contacts.ErrNoRecord
	}
	return data, nil
}

func (s memStore) Save(_ context.Context, namespace string, data []byte) error {
	s[namespace] = data
	return nil
}

func ids(list []contacts.Contact) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

func sample() []contacts.Contact {
	return []contacts.Contact{
		{ID: "anna", FirstName: "Anna", LastName: "Berg", Email: "anna@example.com", Tags: []string{"vip"}},
		{ID: "ben", FirstName: "Ben", LastName: "Okafor", Email: "ben@corp.io", Tags: []string{"lead"}},
		{ID: "cleo", FirstName: "Cleo", Email: "HANNA@mail.de", Tags: []string{"vip", "lead", "vip"}},
		{ID: "dan", FirstName: "Dan", LastName: "Ng", Email: "dan@x.com"},
	}
}

func TestApplyQueryIsCaseInsensitiveSubstring(t *testing.T) {
	two := []contacts.Contact{
		{ID: "a", FirstName: "Anna"},
		{ID: "b", FirstName: "Ben"},
	}
	be.Equal(t, ids(Apply(two, Filter{Query: "an"})), []string{"a"})

	be.Equal(t, ids(Apply(sample(), Filter{Query: "ANN"})), []string{"anna", "cleo"})
	be.Equal(t, ids(Apply(sample(), Filter{Query: "okaf"})), []string{"ben"})
	be.Equal(t, ids(Apply(sample(), Filter{Query: "corp.io"})), []string{"ben"})
	be.Equal(t, ids(Apply(sample(), Filter{Query: "zzz"})), []string{})
}

func TestApplyEmptyFilterMatchesAll(t *testing.T) {
	be.Equal(t, ids(Apply(sample(), Filter{})), []string{"anna", "ben", "cleo", "dan"})
	be.Equal(t, ids(Apply(sample(), Filter{Tag: TagAll})), []string{"anna", "ben", "cleo", "dan"})
}

func TestApplyTagAndQueryCompose(t *testing.T) {
	ab := []contacts.Contact{
		{ID: "A", FirstName: "A", Tags: []string{"vip"}},
		{ID: "B", FirstName: "B", Tags: []string{"lead"}},
	}
	be.Equal(t, ids(Apply(ab, Filter{Query: "", Tag: "vip"})), []string{"A"})

	be.Equal(t, ids(Apply(sample(), Filter{Tag: "vip"})), []string{"anna", "cleo"})
	be.Equal(t, ids(Apply(sample(), Filter{Query: "cleo", Tag: "lead"})), []string{"cleo"})
	be.Equal(t, ids(Apply(sample(), Filter{Query: "anna", Tag: "lead"})), []string{})
	be.Equal(t, ids(Apply(sample(), Filter{Tag: "VIP"})), []string{})
}

func TestApplyDoesNotMutateSnapshot(t *testing.T) {
	snapshot := sample()
	_ = Apply(snapshot, Filter{Query: "a", Tag: "vip"})
	be.Equal(t, snapshot, sample())
}

func TestCountByTag(t *testing.T) {
	got := CountByTag(sample(), []string{"vip", "missing", "lead"})
	be.Equal(t, got, []TagCount{{Tag: "vip", Count: 2}, {Tag: "lead", Count: 2}})

	be.Equal(t, CountByTag(nil, []string{"vip"}), []TagCount{})
}

func TestTagCountsFollowSortedTags(t *testing.T) {
	be.Equal(t, TagCounts(sample()), []TagCount{{Tag: "lead", Count: 2}, {Tag: "vip", Count: 2}})
	be.Equal(t, TagCounts(sample()), TagCounts(sample()))
}

func TestSummarize(t *testing.T) {
	be.Equal(t, Summarize(sample()), Summary{
		TotalContacts: 4,
		UniqueTags:    2,
		PerTag:        []TagCount{{Tag: "lead", Count: 2}, {Tag: "vip", Count: 2}},
	})
	be.Equal(t, Summarize(nil), Summary{PerTag: []TagCount{}})
}

func TestRepositoryLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	repo := contacts.New(memStore{})
	be.Err(t, repo.Load(ctx), nil)

	created, err := repo.Create(ctx, contacts.Draft{
		FirstName: "Max",
		Email:     "max@x.com",
		Tags:      []string{"vip", "lead"},
	})
	be.Err(t, err, nil)

	tags, err := repo.AllTags()
	be.Err(t, err, nil)
	be.Equal(t, tags, []string{"lead", "vip"})

	snapshot, err := repo.List()
	be.Err(t, err, nil)
	be.Equal(t, TagCounts(snapshot), []TagCount{{Tag: "lead", Count: 1}, {Tag: "vip", Count: 1}})

	be.Err(t, repo.Delete(ctx, created.ID), nil)

	tags, err = repo.AllTags()
	be.Err(t, err, nil)
	be.Equal(t, len(tags), 0)

	snapshot, err = repo.List()
	be.Err(t, err, nil)
	be.Equal(t, len(TagCounts(snapshot)), 0)
}
