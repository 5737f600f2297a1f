// Package contacts provides the contact repository: the single owner of the
// contact collection and its persistence.
//
// The package exposes one stateful type and a handful of pure helpers:
//
//   - Repository: Load, Create, Update, Delete, Get, List, AllTags,
//     ContactsByTag.
//   - Store: the persistence port (one serialized record per namespace).
//   - EncodeSnapshot / DecodeSnapshot: the record format.
//   - ParseTags / FormatTags / DistinctTags: tag input and derivation.
//
// # Lifecycle
//
// A Repository is created uninitialized. Load reads the namespace once and
// moves it to StateLoaded. Before that every operation returns an *Error with
// ErrorCodeNotLoaded, so nothing is ever written over persisted data that has
// not been read yet.
//
// # Persistence
//
// Every successful Create, Update and Delete writes the whole collection as
// one record. If the write fails the mutation stays applied in memory, the
// failure is logged and reported through WithPersistErrorHandler, and
// PersistErr returns it until a later save succeeds.
//
// # Missing ids
//
// Update, Delete and Get on an unknown id return an *Error with
// ErrorCodeNotFound and leave the collection untouched. Use IsNotFound to
// check.
//
// # Composition Examples
//
// 1) Open, create, tag query:
//
//	repo := contacts.New(store, contacts.WithLogger(log))
//	if err := repo.Load(ctx); err != nil {
//		// handle
//	}
//
//	created, err := repo.Create(ctx, contacts.Draft{
//		FirstName: "Max",
//		Email:     "max@x.com",
//		Tags:      contacts.ParseTags("vip, lead"),
//	})
//	if err != nil {
//		// handle
//	}
//
//	vips, err := repo.ContactsByTag("vip")
//
// 2) Patch tags only:
//
//	tags := []string{"customer"}
//	_, err = repo.Update(ctx, created.ID, contacts.Changes{Tags: &tags})
package contacts
