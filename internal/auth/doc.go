// Package auth resolves callers to an identity tier and gates operations.
//
// Every caller is exactly one of three tiers: anonymous, member, or owner.
// Members may read, create and update any catalogue table; only the owner
// (the configured superuser) may delete entity rows or remove associations.
//
// [Guard] is the single authorization check, evaluated before any operation
// logic runs. It checks authentication strictly before authorization, so an
// anonymous caller attempting an owner-only action is redirected to login,
// never shown "forbidden".
//
// Identity persists across requests as a signed session cookie
// (gorilla/sessions). A tampered cookie fails signature verification and the
// caller identifies as anonymous; it is never reinterpreted as a different
// identity. Credentials live behind the [CredentialStore] interface so the
// config-backed account table can be swapped for a persisted, hashed store
// without touching the contract.
package auth
