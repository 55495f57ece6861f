package contentfs

import "strings"

// archiveExts is the set of recognized archive suffixes, uncompressed and
// their Yaz0-compressed ("s"-prefixed) counterparts. Matching is
// case-sensitive and keys on the substring after the final dot of the last
// path segment.
var archiveExts = map[string]bool{
	"sarc": true, "pack": true, "bactorpack": true, "bmodelsh": true,
	"beventpack": true, "stera": true, "stats": true, "blarc": true,
	"genvb": true, "bfarc": true,

	"ssarc": true, "spack": true, "sbactorpack": true, "sbmodelsh": true,
	"sbeventpack": true, "sstera": true, "sstats": true, "sblarc": true,
	"sgenvb": true, "sbfarc": true,
}

// IsArchiveName reports whether p names a file that should be presented as
// an archive directory: its last path segment has an extension (text after
// the final dot) that is a member of the archive extension set.
func IsArchiveName(p string) bool {
	base := p
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	dot := strings.LastIndexByte(base, '.')
	if dot < 0 || dot == len(base)-1 {
		return false
	}
	return archiveExts[base[dot+1:]]
}

// stripLeadingSlash converts a mount-host-supplied absolute path into the
// engine's internal, root-relative representation. The internal root is
// the empty path.
func stripLeadingSlash(partial string) string {
	if partial == "" {
		return ""
	}
	if partial[0] == '/' {
		partial = partial[1:]
	}
	if partial == "." {
		return ""
	}
	return partial
}

// parentOf returns the parent of a root-relative path, and "" for a
// top-level path or the root itself.
func parentOf(p string) string {
	if p == "" {
		return ""
	}
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return ""
}

// joinPath joins a root-relative directory path with a child name.
func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// splitFirstSegment splits a slash-separated relative name into its first
// path segment and whether more segments followed.
func splitFirstSegment(name string) (first string, hasMore bool) {
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return name[:i], true
	}
	return name, false
}
