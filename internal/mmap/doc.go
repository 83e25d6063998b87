// Package mmap provides read-only memory-mapped file access.
//
// Local record files are mapped instead of read so the CSV decoder can scan
// them without copying through kernel buffers.
//
//	m, err := mmap.Open("people.csv")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix platforms use mmap(2) and madvise(2) via golang.org/x/sys/unix.
// Windows uses CreateFileMapping/MapViewOfFile; Advise is a no-op there.
package mmap
