// Package server provides HTTP routing, middleware, and the HTML admin
// interface for the music catalogue.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern. The [BasicRouter] implementation uses
// [http.ServeMux] internally with method-qualified patterns.
//
// # Handlers
//
// [Server] owns one handler set per entity (artists, albums, songs, genres)
// plus a shared [associationPage] implementation serving the three junction
// tables. Every handler runs the same sequence: resolve the caller's
// identity from the signed session cookie, apply [auth.Guard] for the
// operation's minimum tier, run exactly one repository operation, then map
// the outcome to a flash message and redirect (or a form re-render that
// preserves the submitted input).
//
// Pages are server-rendered html/template files embedded in the binary; a
// tiny embedded stylesheet is served under /static/.
package server
