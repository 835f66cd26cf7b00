package mmap

import "errors"

// AccessPattern is a madvise hint for a mapped table.
type AccessPattern int

const (
	// AccessDefault leaves read-ahead to the kernel.
	AccessDefault AccessPattern = iota
	// AccessSequential suits parsing a table front to back.
	AccessSequential
	// AccessRandom turns read-ahead off.
	AccessRandom
)

var (
	// ErrClosed reports use of a mapping after Close.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize reports a table too large for the address space.
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrInvalidOffset reports a negative ReadAt offset.
	ErrInvalidOffset = errors.New("mmap: invalid offset")
	// ErrNotRegular is returned for pipes, devices and directories.
	ErrNotRegular = errors.New("mmap: not a regular file")
)
