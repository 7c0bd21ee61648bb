// Package naming turns user or remote supplied file names into identities
// that are safe to store in the workspace.
//
// Names are transliterated to ASCII, whitespace and separators collapse to a
// single underscore, and anything else outside [A-Za-z0-9_] is dropped. The
// extension is kept (lowercased) so the result can still be classified.
package naming
