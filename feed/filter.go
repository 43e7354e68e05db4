package feed

import (
	"sort"
	"strings"
)

// FolderFilter drops trades booked in ignored folders.
type FolderFilter struct {
	ignore map[string]struct{}
}

// NewFolderFilter builds a filter. An explicit command line list wins over
// the configuration file list; the lists are never merged.
func NewFolderFilter(cli, config []string) FolderFilter {
	list := config
	if len(cli) > 0 {
		list = cli
	}
	f := FolderFilter{ignore: make(map[string]struct{}, len(list))}
	for _, folder := range list {
		if folder = strings.TrimSpace(folder); folder != "" {
			f.ignore[folder] = struct{}{}
		}
	}
	return f
}

func (f FolderFilter) Skip(folder string) bool {
	_, ok := f.ignore[strings.TrimSpace(folder)]
	return ok
}

// Folders returns the ignored folders, sorted.
func (f FolderFilter) Folders() []string {
	out := make([]string, 0, len(f.ignore))
	for k := range f.ignore {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SplitList splits a comma separated flag value.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
