package contacts

import (
	"sort"
	"strings"
)

// ParseTags splits comma-separated user input into trimmed, non-empty tags.
// Order is preserved and duplicates are kept.
func ParseTags(input string) []string {
	parts := strings.Split(input, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tags = append(tags, part)
	}
	return tags
}

// FormatTags renders tags back into the comma-separated input form.
func FormatTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// DistinctTags returns every tag used across contacts exactly once, sorted
// ascending.
func DistinctTags(contacts []Contact) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, 16)
	for _, contact := range contacts {
		for _, tag := range contact.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}

func cloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
