package util

import (
	"io"
	"reflect"
)

// CloseWithErr closes c and logs a failure as a warning tagged with what.
// Nil closers and typed nil pointers are ignored.
func CloseWithErr(c io.Closer, what string) {
	if c == nil {
		return
	}
	if v := reflect.ValueOf(c); v.Kind() == reflect.Ptr && v.IsNil() {
		return
	}
	if err := c.Close(); err != nil {
		if what == "" {
			what = "resource"
		}
		Warnf("close %s: %v", what, err)
	}
}
