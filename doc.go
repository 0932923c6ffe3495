// Package tasktrack implements a minimal multi-user task tracker whose core
// is a stateless bearer-token authentication layer.
//
// Credential flow:
//   - Registration and login are orchestrated by Auther, which verifies
//     credentials against the Users repository and asks TokenService to mint
//     a signed, time-bounded HS256 token carrying the user id as subject.
//   - Every other request passes through middleware/bearerauth, which
//     extracts the bearer token, validates it with TokenService, resolves
//     the subject to a live user, and binds that user into the request
//     context. The bound identity is request-scoped and read-only.
//
// Scoping:
//   - Todos are owned resources. The Todos repository filters every read and
//     mutation by the owner id, and a record owned by someone else is
//     indistinguishable from a record that does not exist.
//
// Failure mapping:
//   - Internal failure kinds are tagged with go-errors categories and text
//     codes; RespondError in http.go is the single place they are mapped to
//     externally visible responses, so token sub-failures never leak.
package tasktrack
