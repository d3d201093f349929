//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

package memstream

import (
	"bytes"
	"io"
	"testing"
)

func TestLoopbackFIFO(t *testing.T) {
	var l Loopback
	defer l.Release()

	buf := make([]byte, 6000)
	for x := range buf {
		buf[x] = byte(x)
	}
	if n, err := l.Write(buf); n != len(buf) || err != nil {
		t.Fatalf("expected Write to return: %d, got: %d (%v)", len(buf), n, err)
	}
	if l.Len() != 6000 {
		t.Fatalf("expected Len to return: %d, got: %d", 6000, l.Len())
	}

	head := make([]byte, 2500)
	if n, err := l.Read(head); n != 2500 || err != nil {
		t.Fatalf("expected Read to return: %d, got: %d (%v)", 2500, n, err)
	}
	l.Write([]byte("tail"))

	rest, err := io.ReadAll(&l)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	expected := append(append([]byte(nil), buf[2500:]...), "tail"...)
	if !bytes.Equal(rest, expected) {
		t.Fatalf("expected %d bytes in write order, got: %d", len(expected), len(rest))
	}
	if !bytes.Equal(append(head, rest[:3500]...), buf) {
		t.Fatal("bytes reordered")
	}
}

func TestLoopbackEOFAndReuse(t *testing.T) {
	var l Loopback
	defer l.Release()

	if n, err := l.Read(make([]byte, 4)); n != 0 || err != io.EOF {
		t.Fatalf("expected EOF on an empty stream, got: %d %v", n, err)
	}
	l.Write([]byte("abc"))
	p := make([]byte, 8)
	if n, err := l.Read(p); n != 3 || err != nil {
		t.Fatalf("expected a short read of %d bytes without error, got: %d %v", 3, n, err)
	}
	if _, err := l.Read(p); err != io.EOF {
		t.Fatalf("expected EOF once drained, got: %v", err)
	}

	l.Write([]byte("again"))
	if n, _ := l.Read(p); string(p[:n]) != "again" {
		t.Fatalf("expected drained stream to be reusable, got: %q", p[:n])
	}
}
