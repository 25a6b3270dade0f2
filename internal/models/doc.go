// Package models defines the catalogue's domain entities and the structured
// operation outcomes the web layer acts on.
//
// Entity types ([Artist], [Album], [Song], [Genre]) carry their own
// Validate method; text fields are trimmed before required-field checks so a
// whitespace-only value counts as absent. Association rows ([AlbumSong],
// [SongGenre], [AlbumGenre]) are pure foreign-key pairs.
//
// [Outcome] is the closed result set every write operation reduces to:
// success, validation failure, integrity violation, not found, forbidden,
// authentication required, or a generic failure for anything unclassified.
// [OutcomeOf] converts errors from the repository layer, which only ever
// surface values from the shared error taxonomy, never raw driver errors.
package models
