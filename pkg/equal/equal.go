// Package equal provides the structural comparison used by the hook store to
// decide whether a dependency list changed between renders.
//
// Deep differs from reflect.DeepEqual in three ways: NaN compares equal to
// NaN, nil elements of interface slices are treated as holes, and funcs are
// compared by identity instead of only being equal when both are nil.
package equal

import (
	"math"
	"reflect"
	"unsafe"
)

// visit records a pair of composite values already under comparison. A
// revisit means a cycle; the pair is assumed equal so the walk terminates.
type visit struct {
	a, b unsafe.Pointer
	typ  reflect.Type
}

// Deep reports whether a and b are structurally equal.
func Deep(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return deepValue(reflect.ValueOf(a), reflect.ValueOf(b), make(map[visit]bool))
}

// Deps compares two dependency lists. Lists of different length are never
// equal; nil and empty lists are equal to each other.
func Deps(prev, next []any) bool {
	if len(prev) != len(next) {
		return false
	}
	seen := make(map[visit]bool)
	for i := range prev {
		if !element(prev[i], next[i], seen) {
			return false
		}
	}
	return true
}

func element(a, b any, seen map[visit]bool) bool {
	// Holes only match holes.
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return deepValue(reflect.ValueOf(a), reflect.ValueOf(b), seen)
}

func deepValue(a, b reflect.Value, seen map[visit]bool) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if a.Type() != b.Type() {
		return false
	}

	switch a.Kind() {
	case reflect.Float32, reflect.Float64:
		x, y := a.Float(), b.Float()
		return x == y || (math.IsNaN(x) && math.IsNaN(y))

	case reflect.Complex64, reflect.Complex128:
		x, y := a.Complex(), b.Complex()
		if x == y {
			return true
		}
		return nanEq(real(x), real(y)) && nanEq(imag(x), imag(y))

	case reflect.Bool:
		return a.Bool() == b.Bool()

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()

	case reflect.String:
		return a.String() == b.String()

	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !deepValue(a.Index(i), b.Index(i), seen) {
				return false
			}
		}
		return true

	case reflect.Slice:
		if a.IsNil() != b.IsNil() {
			// nil and empty slices hold the same members.
			return a.Len() == 0 && b.Len() == 0
		}
		if a.Len() != b.Len() {
			return false
		}
		if a.UnsafePointer() == b.UnsafePointer() {
			return true
		}
		if !pushPair(a, b, seen) {
			return true
		}
		for i := 0; i < a.Len(); i++ {
			if !deepValue(a.Index(i), b.Index(i), seen) {
				return false
			}
		}
		return true

	case reflect.Map:
		if a.IsNil() != b.IsNil() {
			return a.Len() == 0 && b.Len() == 0
		}
		if a.Len() != b.Len() {
			return false
		}
		if a.UnsafePointer() == b.UnsafePointer() {
			return true
		}
		if !pushPair(a, b, seen) {
			return true
		}
		iter := a.MapRange()
		for iter.Next() {
			bv := b.MapIndex(iter.Key())
			if !bv.IsValid() || !deepValue(iter.Value(), bv, seen) {
				return false
			}
		}
		return true

	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !deepValue(a.Field(i), b.Field(i), seen) {
				return false
			}
		}
		return true

	case reflect.Pointer:
		if a.UnsafePointer() == b.UnsafePointer() {
			return true
		}
		if a.IsNil() || b.IsNil() {
			return false
		}
		if !pushPair(a, b, seen) {
			return true
		}
		return deepValue(a.Elem(), b.Elem(), seen)

	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		return deepValue(a.Elem(), b.Elem(), seen)

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		return a.Pointer() == b.Pointer()

	default:
		return false
	}
}

// pushPair marks the (a, b) reference pair as visited. It returns false when
// the pair was already being compared higher up the stack.
func pushPair(a, b reflect.Value, seen map[visit]bool) bool {
	v := visit{a.UnsafePointer(), b.UnsafePointer(), a.Type()}
	if seen[v] {
		return false
	}
	seen[v] = true
	return true
}

func nanEq(x, y float64) bool {
	return x == y || (math.IsNaN(x) && math.IsNaN(y))
}
