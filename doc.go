// Package accounts implements the credential and lifecycle core of a
// user-account service: password hashing, bearer-token issuance and
// verification, persistent account storage, and the registration,
// login, profile, and password-recovery operations that compose them.
//
// Layering:
//   - HashPassword/ComparePasswordAndHash wrap bcrypt with a fixed work
//     factor. Hashes carry their own salt and are never reversible.
//   - TokenService signs and validates self-contained JWTs. Tokens are
//     stateless: logout is client-side discard, there is no revocation
//     list.
//   - AccountsRepository owns all persisted account state. Email
//     uniqueness and reset-token consumption are enforced by the
//     database (unique index, conditional UPDATE), never by
//     read-then-write application logic.
//   - Manager exposes one plain operation per lifecycle action and
//     returns typed failures. A transport layer decides how those map
//     onto a protocol; nothing in this package knows about HTTP.
//
// All failures are rich errors from github.com/goliatone/go-errors with
// a stable category and text code, so callers can branch on kind without
// string matching.
package accounts
