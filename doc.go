// Package crm is a lightweight index for the subpackages of the local contact
// manager.
//
// This root package is documentation-only. Import specific subpackages to use
// concrete helpers.
//
// Available subpackages:
//   - github.com/spachava753/crm/contacts
//     Contact repository: create/update/delete/lookup, tag queries, persistence.
//   - github.com/spachava753/crm/views
//     Filtered list view and per-tag dashboard aggregation.
//   - github.com/spachava753/crm/mail
//     Simulated per-contact email send.
//   - github.com/spachava753/crm/storage/sqlite
//     Local SQLite storage for the repository.
//   - github.com/spachava753/crm/storage/redis
//     Redis storage for the repository.
//
// The crm command (cmd/crm) wires these together behind a CLI.
package crm
