//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

package core

import (
	"bytes"
	"errors"
	"net"
	"os"
	"strings"
	"testing"
	"time"
)

func TestUint32BigEndian(t *testing.T) {
	var buf bytes.Buffer
	if n := WriteUint32(&buf, 0x01020304); n != 4 {
		t.Fatalf("expected WriteUint32 to return: %d, got: %d", 4, n)
	}
	if !bytes.Equal(buf.Bytes(), []byte{1, 2, 3, 4}) {
		t.Fatalf("expected big endian bytes, got: %x", buf.Bytes())
	}
	var v uint32
	ReadUint32(&buf, &v)
	if v != 0x01020304 {
		t.Fatalf("expected ReadUint32 to return: %x, got: %x", 0x01020304, v)
	}
}

func TestReadBytesPanicsOnShortInput(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("ReadBytes did not panic on short input")
		}
	}()
	var data [8]byte
	ReadBytes(bytes.NewReader([]byte{1, 2, 3}), data[:])
}

func TestAbortOnFormatsMessage(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected an error panic, got: %v", r)
		}
		if err.Error() != "open x: boom" {
			t.Fatalf("expected formatted message, got: %q", err.Error())
		}
	}()
	AbortOn(errors.New("boom"), "open %s: %v", "x", "boom")
}

func TestHumanSize(t *testing.T) {
	cases := map[int64]string{
		0:           "0 B",
		999:         "999 B",
		4096:        "4.00 KiB",
		1536 * 1024: "1.50 MiB",
	}
	for size, want := range cases {
		if got := HumanSize(size); got != want {
			t.Errorf("HumanSize(%d) = %q, expected %q", size, got, want)
		}
	}
	if got := ShortHumanSize(4096); got != "4.00K" {
		t.Errorf("ShortHumanSize(4096) = %q, expected %q", got, "4.00K")
	}
}

func TestLogLevelFilterAndEscape(t *testing.T) {
	var out bytes.Buffer
	LogOutput = &out
	defer func() { LogOutput = os.Stdout }()

	saved := LogLevel
	LogLevel = LogInfo
	defer func() { LogLevel = saved }()

	Log(LogTrace, "hidden %s", "trace")
	if out.Len() != 0 {
		t.Fatalf("expected trace message to be filtered, got: %q", out.String())
	}
	Log(LogWarning, "line %s", "a\nb")
	line := out.String()
	if !strings.Contains(line, " * line a\\x0ab") {
		t.Fatalf("expected escaped warning line, got: %q", line)
	}
	if LogEnabled(LogDebug) || !LogEnabled(LogError) {
		t.Fatal("LogEnabled does not follow LogLevel")
	}
}

func TestTimeoutConnExpires(t *testing.T) {
	a, b := net.Pipe()
	defer b.Close()
	conn := NewTimeoutConn(a, 20*time.Millisecond)
	defer conn.Close()

	var buf [1]byte
	start := time.Now()
	_, err := conn.Read(buf[:])
	var netErr net.Error
	if !errors.As(err, &netErr) || !netErr.Timeout() {
		t.Fatalf("expected a timeout error, got: %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("read deadline was not applied")
	}
}

func TestAssertFormatsMessage(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Skip("ASSERT is compiled out in release builds")
		}
		err, ok := r.(error)
		if !ok || err.Error() != "ASSERT failed: lock 7 held twice" {
			t.Fatalf("expected formatted assert message, got: %v", r)
		}
	}()
	ASSERT(true, "never")
	ASSERT(false, "lock %d held twice", 7)
}
