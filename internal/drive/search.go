package drive

import (
	"strings"

	"github.com/driveterm/drive/internal/proto"
	"github.com/sahilm/fuzzy"
)

type entrySource []proto.FileEntry

func (e entrySource) String(i int) string { return e[i].FileName }
func (e entrySource) Len() int            { return len(e) }

// Filter narrows files by term. By default it keeps entries whose name
// contains term, ignoring case, in listing order. With fuzzy set, entries
// are matched fuzzily and ordered best match first.
func Filter(files []proto.FileEntry, term string, fuzzyMatch bool) []proto.FileEntry {
	if term == "" {
		out := make([]proto.FileEntry, len(files))
		copy(out, files)
		return out
	}
	if fuzzyMatch {
		matches := fuzzy.FindFrom(term, entrySource(files))
		out := make([]proto.FileEntry, 0, len(matches))
		for _, m := range matches {
			out = append(out, files[m.Index])
		}
		return out
	}
	needle := strings.ToLower(term)
	out := make([]proto.FileEntry, 0, len(files))
	for _, f := range files {
		if strings.Contains(strings.ToLower(f.FileName), needle) {
			out = append(out, f)
		}
	}
	return out
}
