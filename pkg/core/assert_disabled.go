//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

//go:build release

package core

// ASSERT is compiled out of release builds.
func ASSERT(ok bool, v ...interface{}) {}
