package views

import (
	"strings"

	"github.com/spachava753/crm/contacts"
)

// TagAll is the unselected tag state. It matches every contact, as does an
// empty Tag.
const TagAll = "all"

// Filter selects contacts for the list view.
type Filter struct {
	// Query is matched case-insensitively as a substring of first name, last
	// name or email. Empty matches all.
	Query string
	// Tag, when set to anything other than "" or TagAll, requires an exact
	// tag match.
	Tag string
}

// TagCount is one bar of the contacts-per-tag aggregation.
type TagCount struct {
	Tag   string
	Count int
}

// Summary holds the dashboard figures.
type Summary struct {
	TotalContacts int
	UniqueTags    int
	PerTag        []TagCount
}

// Apply returns the contacts of snapshot matching f, in snapshot order.
func Apply(snapshot []contacts.Contact, f Filter) []contacts.Contact {
	query := strings.ToLower(f.Query)
	tag := f.Tag
	if tag == TagAll {
		tag = ""
	}

	out := make([]contacts.Contact, 0, len(snapshot))
	for _, contact := range snapshot {
		if !matchesQuery(contact, query) {
			continue
		}
		if tag != "" && !contact.HasTag(tag) {
			continue
		}
		out = append(out, contact)
	}
	return out
}

// CountByTag counts, for each tag in order, the contacts carrying it. A
// contact counts once per tag however often the tag repeats on it. Tags no
// contact carries are left out.
func CountByTag(snapshot []contacts.Contact, tags []string) []TagCount {
	out := make([]TagCount, 0, len(tags))
	for _, tag := range tags {
		count := 0
		for _, contact := range snapshot {
			if contact.HasTag(tag) {
				count++
			}
		}
		if count == 0 {
			continue
		}
		out = append(out, TagCount{Tag: tag, Count: count})
	}
	return out
}

// TagCounts aggregates snapshot over its own distinct tags, sorted by tag.
func TagCounts(snapshot []contacts.Contact) []TagCount {
	return CountByTag(snapshot, contacts.DistinctTags(snapshot))
}

// Summarize computes the dashboard figures for snapshot.
func Summarize(snapshot []contacts.Contact) Summary {
	tags := contacts.DistinctTags(snapshot)
	return Summary{
		TotalContacts: len(snapshot),
		UniqueTags:    len(tags),
		PerTag:        CountByTag(snapshot, tags),
	}
}

func matchesQuery(contact contacts.Contact, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(contact.FirstName), lowerQuery) ||
		strings.Contains(strings.ToLower(contact.LastName), lowerQuery) ||
		strings.Contains(strings.ToLower(contact.Email), lowerQuery)
}
