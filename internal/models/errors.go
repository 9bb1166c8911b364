package models

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("link not found")

// StoreError reports a failed key-value operation. It is never retried.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
