// Package palette stores the named colors offered to diagram authors.
//
// A palette is an ordered list of [Entry] values. Colors are compared by
// their exact RGB string ("147,197,253"); names are free text and need not
// be unique. [Palette] implements the color lookup used by the TikZ
// composer, so a diagram element whose color matches a palette entry is
// emitted under that entry's name.
//
// # Backends
//
// Every backend satisfies [Store]:
//
//   - [FileStore]: a two-column CSV file (the default)
//   - [SQLiteStore]: a single table in a SQLite database
//   - [RedisStore]: one JSON value under a key
//   - [MongoStore]: one document per palette key
//   - [MemoryStore]: process-local, nothing persisted
//
// [Open] picks a backend from a [Config].
//
// # Failure handling
//
// Load never fails. A missing, empty or unreadable palette is replaced by
// [Defaults], which is written back so the next Load sees it. Save reports
// backend write failures and stores only well-formed entries (see
// [Sanitize]).
package palette
