// Package repositories implements SQLite persistence for the catalogue.
//
// Each repository takes its *sql.DB through its constructor and performs one
// atomic statement (or one explicit transaction) per operation. Driver
// constraint faults never escape: every write classifies them into the
// shared error taxonomy at the operation boundary, so callers see
// [shared.ErrDuplicate], [shared.ErrMissingReference],
// [shared.ErrHasDependents] or [shared.ErrNotFound] rather than
// sqlite3 error values.
//
// Key Implementations:
//   - [ArtistRepository], [AlbumRepository], [SongRepository], [GenreRepository] : entity CRUD
//   - [AssociationRepository] : the three many-to-many junction tables
//   - [Seed] : idempotent seed dataset keyed on natural uniqueness
package repositories
