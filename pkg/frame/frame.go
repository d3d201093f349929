//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

// Package frame is the small message protocol spoken by bufrw-util echo and
// serve. Every message is a four letter type, a length and the payload, all
// big-endian.
package frame

import (
	"io"

	"github.com/fredli74/bufrw/pkg/core"
)

//  ->  (Sent to server)
//  <-  (Replied by server)

const (
	MsgTypeGreeting uint32 = 0x686F6C61 // = "hola"
	MsgTypeEcho     uint32 = 0x6563686F // = "echo"
	MsgTypeGoodbye  uint32 = 0x71756974 // = "quit"
	MsgTypeError    uint32 = 0x65727273 // = "errs"
)

// Server replies carry the type in uppercase, the same trick as ASCII by
// clearing the lowercase bit.
const MsgTypeServerMask uint32 = 0xDFDFDFDF
const MsgTypeClientMask uint32 = 0x20202020

// MaxPayload caps a single message so a corrupted length cannot make the
// reader allocate gigabytes.
const MaxPayload = 16 * 1024 * 1024

type Message struct {
	Type uint32
	Data []byte
}

// Reply returns the server side answer to m carrying data.
func (m Message) Reply(data []byte) *Message {
	return &Message{Type: m.Type & MsgTypeServerMask, Data: data}
}

// IsReply reports whether m was sent by a server.
func (m Message) IsReply() bool {
	return m.Type&MsgTypeClientMask == 0
}

func (m Message) String() string {
	b := [4]byte{byte(m.Type >> 24), byte(m.Type >> 16), byte(m.Type >> 8), byte(m.Type)}
	return string(b[:])
}

// WriteMessage serializes msg to w and panics on any write error.
func WriteMessage(w io.Writer, msg *Message) int {
	if len(msg.Data) > MaxPayload {
		core.Abort("frame: payload of %d bytes exceeds the %d byte limit", len(msg.Data), MaxPayload)
	}
	n := core.WriteUint32(w, msg.Type)
	n += core.WriteUint32(w, uint32(len(msg.Data)))
	if len(msg.Data) > 0 {
		n += core.WriteBytes(w, msg.Data)
	}
	return n
}

// ReadMessage reads one message from r and panics on short input or a
// payload over MaxPayload.
func ReadMessage(r io.Reader) *Message {
	var msg Message
	var size uint32
	core.ReadUint32(r, &msg.Type)
	core.ReadUint32(r, &size)
	if size > MaxPayload {
		core.Abort("frame: invalid %q message of %d bytes (connection corrupted?)", msg.String(), size)
	}
	if size > 0 {
		msg.Data = make([]byte, size)
		core.ReadBytes(r, msg.Data)
	}
	return &msg
}

// Exchange writes msg through rw, flushes it and reads the reply. rw is
// typically a bufrw.Sequential over a connection.
func Exchange(rw interface {
	io.ReadWriter
	Flush() error
}, msg *Message) *Message {
	WriteMessage(rw, msg)
	core.AbortOn(rw.Flush())
	reply := ReadMessage(rw)
	if reply.Type == MsgTypeError&MsgTypeServerMask {
		core.Abort("frame: server error: %s", string(reply.Data))
	}
	if reply.Type != msg.Type&MsgTypeServerMask {
		core.Abort("frame: expected %q reply, got %q", Message{Type: msg.Type & MsgTypeServerMask}.String(), reply.String())
	}
	return reply
}
