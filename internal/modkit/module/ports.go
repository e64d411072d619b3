package module

import (
	"fmt"
	"reflect"
)

// PortsOf returns m's ports as T. When the ports are a struct, the first
// exported field holding a T is returned instead
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		if !rv.Type().Field(i).IsExported() {
			continue
		}
		if v, ok := rv.Field(i).Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for wiring code that cannot run without the port
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic(fmt.Sprintf("module %s: no %v port", m.Name(), reflect.TypeFor[T]()))
	}
	return v
}
