// Package views holds the read-only projections shown to users: the filtered
// contact list and the per-tag dashboard.
//
// Every function is pure. It takes a snapshot (usually from
// contacts.Repository.List) and never retains or mutates it. Identical input
// yields identical, order-stable output, so callers may recompute on every
// change without caching.
//
// Example:
//
//	snapshot, err := repo.List()
//	if err != nil {
//		// handle
//	}
//	vips := views.Apply(snapshot, views.Filter{Query: "an", Tag: "vip"})
//	dashboard := views.Summarize(snapshot)
package views
