package remote

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingID is returned when a delete is attempted without a record id
	ErrMissingID = errors.New("record id is required")

	// ErrRemoteWrite matches any failed create or delete
	ErrRemoteWrite = errors.New("remote write failed")
)

// Op names a remote operation
type Op string

const (
	OpList   Op = "list"
	OpCreate Op = "create"
	OpDelete Op = "delete"
)

func (o Op) isWrite() bool {
	return o == OpCreate || o == OpDelete
}

// NetworkError indicates the request could not be sent or completed
type NetworkError struct {
	Op  Op
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrRemoteWrite) match failed writes
func (e *NetworkError) Is(target error) bool {
	return target == ErrRemoteWrite && e.Op.isWrite()
}

// RemoteRejection indicates the store answered with a non-success status
type RemoteRejection struct {
	Op         Op
	StatusCode int
	Body       string
}

func (e *RemoteRejection) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s rejected (status %d)", e.Op, e.StatusCode)
	}

	return fmt.Sprintf("%s rejected (status %d): %s", e.Op, e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrRemoteWrite) match failed writes
func (e *RemoteRejection) Is(target error) bool {
	return target == ErrRemoteWrite && e.Op.isWrite()
}
