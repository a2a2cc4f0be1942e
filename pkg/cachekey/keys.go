package cachekey

import "fmt"

// Key key.
type Key string

// Format format.
func (k Key) Format(params ...interface{}) string {
	return fmt.Sprintf(string(k), params...)
}

// Resource keys.

const (
	// ResourceList1 is the key for a cached whole-collection listing.
	// params: resource type
	ResourceList1 Key = "resource_list:%s"
	// ResourceDetails2 is the key for cached details of a single resource.
	// params: resource type, resource id
	ResourceDetails2 Key = "resource_details:%s:%s"
)

// Memoized calls.

const (
	// MemoizedCall3 is the key for a memoized call result.
	// params: key prefix, function name, argument digest
	MemoizedCall3 Key = "%s:%s:%s"
)
