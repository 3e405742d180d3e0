// Package board implements the session and synchronization core of a small
// task-board application: credential verification against a user store,
// signed expiring session tokens (JWT), and the HTTP surface the board
// client talks to.
//
// Session lifecycle:
//   - UserProvider verifies a username/password pair against bcrypt hashes
//     held by a Users repository and returns an Identity.
//   - Auther turns a verified Identity into a signed token with a fixed
//     one hour TTL. An empty signing secret is rejected at construction
//     time; the issuer never falls back to signing with an empty key.
//   - TokenService validates presented tokens (signature and expiry) when
//     they come back on protected requests. Client-side expiry checks live
//     in the client package and are an optimization only; this server-side
//     validation is the actual trust boundary.
//
// The ticket model and its repositories are deliberately thin: tickets are
// plain CRUD records and the assignee relationship is resolved at read time
// by the server, never joined client-side.
package board
