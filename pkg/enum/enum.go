package enum

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	enumManager = map[reflect.Type]any{}
	enumMutex   sync.RWMutex
)

type enum[T comparable] struct {
	toEnum   map[string]T
	toString map[T]string
}

// New registers a value of an enum type under its display name. It is
// intended to be called in package-level var blocks.
func New[T comparable](value T, name string) T {
	t := reflect.TypeOf(value)

	enumMutex.Lock()
	defer enumMutex.Unlock()

	if _, ok := enumManager[t]; !ok {
		enumManager[t] = enum[T]{toEnum: map[string]T{}, toString: map[T]string{}}
	}

	e := enumManager[t].(enum[T])
	e.toEnum[name] = value
	e.toString[value] = name
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	var defaultT T

	enumMutex.RLock()
	defer enumMutex.RUnlock()

	e, ok := enumManager[reflect.TypeOf(defaultT)]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

func ToString[T comparable](value T) string {
	enumMutex.RLock()
	defer enumMutex.RUnlock()

	e, ok := enumManager[reflect.TypeOf(value)]
	if !ok {
		return ""
	}

	return e.(enum[T]).toString[value]
}
