// Package mmap maps snapshot files read-only for blobstore.LocalStore.
//
// Unix builds use mmap(2) with madvise(2) hints; Windows uses
// CreateFileMapping and MapViewOfFile and ignores hints. A Mapping may be
// read concurrently. The slice from Bytes must not be used after Close.
package mmap
