// Package utils holds the small generic helpers shared across this repo's
// packages.
package utils

// IdPtr is the pointer version of identity: 'a -> *'a. Used to populate the
// optional *time.Time/*uint64 fields of ndn.SigConfig from a plain value.
func IdPtr[T any](value T) *T {
	return &value
}
