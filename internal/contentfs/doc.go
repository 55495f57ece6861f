/*
Package contentfs implements the virtual filesystem engine behind botwfs: a
unified, read-mostly view over one or more content directories with archive
files (SARC and its relatives) transparently exposed as directories, and an
optional work directory capturing copy-on-write edits.

# Layering

	┌──────────────────────────────────────────────┐
	│                 mount host                    │   (out of scope: libfuse / WinFsp)
	└───────────────────┬────────────────────────────┘
	                     │ path + flags + fd
	┌───────────────────▼────────────────────────────┐
	│                Operations                     │   this package
	│   getattr / readdir / open / read / write ... │
	└───────┬───────────────────────┬─────────────────┘
	        │                       │
	┌───────▼────────┐     ┌────────▼─────────┐
	│   fdtable       │     │  Directory       │
	│ (open handles)  │     │  HostDirectory   │
	└─────────────────┘     │  ArchiveDirectory│
	                         │  ContentDirectory│
	                         └────────┬─────────┘
	                                  │
	                         ┌────────▼─────────┐
	                         │  archiveCache     │
	                         │  (internal/sarc)  │
	                         └───────────────────┘

Every path resolution walks up from the requested path toward the root,
stopping the first time it finds a directory (host, overlay, or archive)
that contains it — recursing into archive bytes only when a path segment
names an archive file. See Operations.resolveDirectory for the full algorithm.
*/
package contentfs
