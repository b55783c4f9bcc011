// Package fsutil provides the file system operations of a generation run:
// all-or-nothing writes of the artifact set, splicing generated sections
// into existing sources, and diffing generated content against what is
// already on disk.
package fsutil
