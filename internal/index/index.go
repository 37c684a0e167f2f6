// Package index fetches and parses the remote dependency index: a TOML document
// whose top-level keys name dependencies and whose values say where to get them.
package index

import (
	"dreamcpp/internal/logger"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
)

// ErrMalformed is returned when the index document cannot be parsed at all.
var ErrMalformed = eris.New("malformed index document")

// Entry is one dependency known to the index.
type Entry struct {
	Key            string
	SourceLocation string
	Aliases        []string
	Branch         string // empty when the index names no branch
	HeaderOnly     bool
}

// Index is a parsed index document. Entries keep document order.
type Index struct {
	entries []Entry
	byKey   map[string]int
}

// Parse decodes an index document. Top-level values that are not tables and
// tables without a source location are dropped; a document that is not valid
// TOML is rejected as a whole. Optional fields of the wrong type are ignored.
func Parse(body []byte) (*Index, error) {
	var tables map[string]toml.Primitive
	md, err := toml.Decode(string(body), &tables)
	if err != nil {
		return nil, eris.Wrap(ErrMalformed, err.Error())
	}

	idx := &Index{byKey: make(map[string]int, len(tables))}
	seen := make(map[string]bool, len(tables))
	for _, key := range md.Keys() {
		// Keys() lists every key in document order; a table made only of
		// dotted keys never appears as a key of its own
		name := key[0]
		if seen[name] {
			continue
		}
		seen[name] = true

		prim, ok := tables[name]
		if !ok {
			continue
		}
		var fields map[string]any
		if err := md.PrimitiveDecode(prim, &fields); err != nil {
			logger.Debug("[DEBUG] Skipping index entry %s: not a table\n", name)
			continue
		}

		entry, ok := entryFromFields(name, fields)
		if !ok {
			logger.Debug("[DEBUG] Skipping index entry %s: no source location\n", name)
			continue
		}
		idx.byKey[name] = len(idx.entries)
		idx.entries = append(idx.entries, entry)
	}

	logger.Debug("[DEBUG] Parsed index with %d entries\n", len(idx.entries))
	return idx, nil
}

// entryFromFields builds an entry from one index table. git and header are the
// field names used by older index documents and are only consulted when the
// current names are absent.
func entryFromFields(name string, fields map[string]any) (Entry, bool) {
	entry := Entry{Key: name}

	entry.SourceLocation, _ = fields["source_location"].(string)
	if entry.SourceLocation == "" {
		entry.SourceLocation, _ = fields["git"].(string)
	}
	if entry.SourceLocation == "" {
		return Entry{}, false
	}

	if headerOnly, ok := fields["header_only"].(bool); ok {
		entry.HeaderOnly = headerOnly
	} else if header, ok := fields["header"].(bool); ok {
		entry.HeaderOnly = header
	}
	entry.Branch, _ = fields["branch"].(string)

	if aliases, ok := fields["aliases"].([]any); ok {
		for _, a := range aliases {
			if alias, ok := a.(string); ok {
				entry.Aliases = append(entry.Aliases, alias)
			}
		}
	}
	return entry, true
}

// Len returns the number of usable entries.
func (idx *Index) Len() int { return len(idx.entries) }

// Entries returns the entries in document order.
func (idx *Index) Entries() []Entry {
	out := make([]Entry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

// Lookup finds the entry for name: an exact key match first, then the first
// entry in document order that lists name among its aliases. Matching is exact
// and case-sensitive.
func (idx *Index) Lookup(name string) (Entry, bool) {
	if i, ok := idx.byKey[name]; ok {
		return idx.entries[i], true
	}
	for _, entry := range idx.entries {
		for _, alias := range entry.Aliases {
			if alias == name {
				return entry, true
			}
		}
	}
	return Entry{}, false
}
