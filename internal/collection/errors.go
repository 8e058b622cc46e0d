package collection

import (
	"errors"
	"reflect"
)

var (
	// ErrNilItem is returned when a nil item is offered to the collection.
	ErrNilItem = errors.New("collection: nil item")
	// ErrNotMember is returned when an operation names an item that is not
	// part of the active list.
	ErrNotMember = errors.New("collection: performing operation on a non-member")
	// ErrDuplicate is returned when an item is added twice.
	ErrDuplicate = errors.New("collection: item is already a member")
)

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
