//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

package frame

import (
	"bytes"
	"fmt"
	"net"
	"testing"

	"github.com/fredli74/bufrw/pkg/bufrw"
	"github.com/fredli74/bufrw/pkg/core"
	"github.com/fredli74/bufrw/pkg/memstream"
)

func expectPanic(t *testing.T, f func()) (r interface{}) {
	t.Helper()
	defer func() {
		r = recover()
	}()
	f()
	t.Fatal("expected a panic")
	return nil
}

func TestMessageThroughSequential(t *testing.T) {
	lb := &memstream.Loopback{}
	defer lb.Release()
	w := bufrw.NewSequentialSize(lb, 32)

	sent := []*Message{
		{Type: MsgTypeGreeting},
		{Type: MsgTypeEcho, Data: bytes.Repeat([]byte("payload "), 20)},
		{Type: MsgTypeGoodbye},
	}
	for _, m := range sent {
		WriteMessage(w, m)
	}
	for i, m := range sent {
		got := ReadMessage(w)
		if got.Type != m.Type || !bytes.Equal(got.Data, m.Data) {
			t.Fatalf("message %d: expected %s with %d bytes, got: %s with %d bytes", i, m, len(m.Data), got, len(got.Data))
		}
	}
}

func TestReplyMask(t *testing.T) {
	m := Message{Type: MsgTypeEcho}
	r := m.Reply([]byte("x"))
	if r.String() != "ECHO" || !r.IsReply() || m.IsReply() {
		t.Fatalf("expected ECHO reply, got: %s (reply=%v)", r, r.IsReply())
	}
}

func TestReadMessageRejectsOversize(t *testing.T) {
	var buf bytes.Buffer
	core.WriteUint32(&buf, MsgTypeEcho)
	core.WriteUint32(&buf, MaxPayload+1)
	r := expectPanic(t, func() { ReadMessage(&buf) })
	if err, ok := r.(error); !ok || err == nil {
		t.Fatalf("expected an error panic, got: %v", r)
	}
}

func TestReadMessageShortInput(t *testing.T) {
	var buf bytes.Buffer
	WriteMessage(&buf, &Message{Type: MsgTypeEcho, Data: []byte("truncated")})
	buf.Truncate(buf.Len() - 3)
	expectPanic(t, func() { ReadMessage(&buf) })
}

func TestExchangeOverPipe(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	go func() {
		defer server.Close()
		s := bufrw.NewSequential(server)
		for {
			msg := ReadMessage(s)
			if msg.Type == MsgTypeGoodbye {
				WriteMessage(s, msg.Reply(nil))
				s.Flush()
				return
			}
			if msg.Type == MsgTypeEcho {
				WriteMessage(s, msg.Reply(msg.Data))
			} else {
				WriteMessage(s, &Message{Type: MsgTypeError & MsgTypeServerMask, Data: []byte("unknown " + msg.String())})
			}
			s.Flush()
		}
	}()

	c := bufrw.NewSequential(client)
	for i := 0; i < 5; i++ {
		data := []byte(fmt.Sprintf("round %d", i))
		reply := Exchange(c, &Message{Type: MsgTypeEcho, Data: data})
		if !bytes.Equal(reply.Data, data) {
			t.Fatalf("expected %q, got: %q", data, reply.Data)
		}
	}
	r := expectPanic(t, func() { Exchange(c, &Message{Type: MsgTypeGreeting}) })
	if err, ok := r.(error); !ok || !bytes.Contains([]byte(err.Error()), []byte("unknown hola")) {
		t.Fatalf("expected server error, got: %v", r)
	}
	Exchange(c, &Message{Type: MsgTypeGoodbye})
}
