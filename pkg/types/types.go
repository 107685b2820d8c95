package types

// Entry is one managed path: Local is the copy inside the bundle's storage
// directory, Remote is the original system location that becomes a symlink
// pointing at Local. Both are absolute paths.
type Entry struct {
	Local  string `toml:"local"`
	Remote string `toml:"remote"`
}

// Bundle is a named group of entries. The id doubles as the name of the
// bundle's storage subdirectory.
type Bundle struct {
	ID      string  `toml:"id"`
	Entries []Entry `toml:"entries"`
}

// Upsert adds entry to the bundle. An existing entry with the same remote
// is replaced in place; otherwise the entry is appended.
func (b *Bundle) Upsert(entry Entry) {
	for i := range b.Entries {
		if b.Entries[i].Remote == entry.Remote {
			b.Entries[i] = entry
			return
		}
	}
	b.Entries = append(b.Entries, entry)
}

// Lock records which bundles are currently believed linked, and with which
// entries. It holds at most one record per bundle id.
type Lock struct {
	Bundles []Bundle `toml:"bundles"`
}

// Find returns the recorded bundle for id, or nil if none is recorded.
func (l *Lock) Find(id string) *Bundle {
	for i := range l.Bundles {
		if l.Bundles[i].ID == id {
			return &l.Bundles[i]
		}
	}
	return nil
}

// Replace removes any existing record for bundle.ID and appends bundle.
// Records are replaced wholesale, never merged.
func (l *Lock) Replace(bundle Bundle) {
	kept := l.Bundles[:0]
	for _, b := range l.Bundles {
		if b.ID != bundle.ID {
			kept = append(kept, b)
		}
	}
	l.Bundles = append(kept, bundle)
}

// Remotes returns the set of remote paths recorded for id, used as the
// pre-authorization set on re-link. Empty when id is not recorded.
func (l *Lock) Remotes(id string) map[string]bool {
	remotes := make(map[string]bool)
	if b := l.Find(id); b != nil {
		for _, e := range b.Entries {
			remotes[e.Remote] = true
		}
	}
	return remotes
}
