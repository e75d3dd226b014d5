package gridstore

import "errors"

var (
	// ErrInvalidFormat is returned when a blob is not a grid snapshot.
	ErrInvalidFormat = errors.New("gridstore: invalid snapshot format")

	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("gridstore: unsupported format version")

	// ErrChecksumMismatch is returned when the payload checksum does not match.
	ErrChecksumMismatch = errors.New("gridstore: payload checksum mismatch")

	// ErrKindMismatch is returned when a snapshot is converted to a grid of
	// another dimension or kind.
	ErrKindMismatch = errors.New("gridstore: snapshot holds a different grid type")

	// ErrNoCommit is returned by Latest before anything was committed.
	ErrNoCommit = errors.New("gridstore: no committed snapshot")
)
