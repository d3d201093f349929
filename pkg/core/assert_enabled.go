//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

//go:build !release

package core

import "fmt"

// ASSERT panics when ok is false. A leading string argument is used as a
// format for the rest. Release builds compile the check out, so arguments
// must be free of side effects.
func ASSERT(ok bool, v ...interface{}) {
	if ok {
		return
	}
	if len(v) > 0 {
		if format, isString := v[0].(string); isString {
			panic(fmt.Errorf("ASSERT failed: "+format, v[1:]...))
		}
	}
	panic(fmt.Errorf("ASSERT failed: %v", v))
}
