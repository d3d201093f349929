//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

// Package core provides the shared helpers of the bufrw tree: logging,
// abort/assert handling and big-endian wire helpers.
package core

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fredli74/bytearray"
)

// Abort panics with a formatted error message.
func Abort(format string, a ...interface{}) {
	panic(fmt.Errorf(format, a...))
}

// AbortOn panics if err is non-nil. A leading string argument replaces the
// error text as a format for the rest.
func AbortOn(err error, a ...interface{}) {
	if err == nil {
		return
	}
	if len(a) > 0 {
		if format, ok := a[0].(string); ok {
			Abort(format, a[1:]...)
		}
	}
	panic(err)
}

//********************************************************************************//
//                        Wire helpers, big-endian, panic on error                //
//********************************************************************************//

func ReadBytes(r io.Reader, data []byte) int {
	n, err := io.ReadFull(r, data)
	AbortOn(err)
	return n
}

func ReadUint32(r io.Reader, data *uint32) int {
	var b [4]byte
	n := ReadBytes(r, b[:])
	*data = binary.BigEndian.Uint32(b[:])
	return n
}

func WriteBytes(w io.Writer, data []byte) int {
	n, err := w.Write(data)
	AbortOn(err)
	return n
}

func WriteUint32(w io.Writer, data uint32) int {
	return WriteBytes(w, binary.BigEndian.AppendUint32(nil, data))
}

//********************************************************************************//
//                                     Sizes                                      //
//********************************************************************************//

var humanUnits = [...]struct{ short, long string }{
	{"B", "B"}, {"K", "KiB"}, {"M", "MiB"}, {"G", "GiB"}, {"T", "TiB"}, {"P", "PiB"}, {"E", "EiB"},
}

// unitize scales size down in steps of 1024 while it reads above 1000 and
// picks a precision that shows three significant digits.
func unitize(size int64) (scaled float64, unit int, precision int) {
	scaled = float64(size)
	for unit < len(humanUnits)-1 && scaled > 1000 {
		scaled /= 1024
		unit++
	}
	switch {
	case unit == 0:
	case scaled < 10:
		precision = 2
	case scaled < 100:
		precision = 1
	}
	return scaled, unit, precision
}

// ShortHumanSize formats size as "4.00K".
func ShortHumanSize(size int64) string {
	s, u, p := unitize(size)
	return fmt.Sprintf("%.*f%s", p, s, humanUnits[u].short)
}

// HumanSize formats size as "4.00 KiB".
func HumanSize(size int64) string {
	s, u, p := unitize(size)
	return fmt.Sprintf("%.*f %s", p, s, humanUnits[u].long)
}

// MemoryStats summarizes the bytearray slab pool behind every memstream.
func MemoryStats() string {
	slabs, _, _, allocated, inUse := bytearray.Stats()
	return fmt.Sprintf("Memory stats: %d slabs, %s allocated, %s used", slabs, ShortHumanSize(allocated), ShortHumanSize(inUse))
}
