//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/smtc/rollsum"
	"golang.org/x/sync/errgroup"

	"github.com/fredli74/bufrw/pkg/bufrw"
	"github.com/fredli74/bufrw/pkg/core"
	"github.com/fredli74/bufrw/pkg/frame"
	"github.com/fredli74/bufrw/pkg/memstream"
)

// commandSet bundles the actual command implementations so main stays thin.
type commandSet struct {
	bufferSize int
	out        io.Writer

	timeout time.Duration
	maxConn int
}

func newCommandSet(bufferSize int, out io.Writer) *commandSet {
	return &commandSet{bufferSize: bufferSize, out: out}
}

func hostAddress(input string) string {
	if _, _, err := net.SplitHostPort(input); err == nil {
		return input
	}
	return net.JoinHostPort(input, strconv.Itoa(DefaultServerPort))
}

//********************************************************************************//
//                                   File commands                                //
//********************************************************************************//

// OpenFile always takes an exclusive lock, so cat waits for any writer.
func (c *commandSet) cat(path string) {
	f, err := bufrw.OpenFile(path, c.bufferSize, os.O_RDONLY, 0)
	core.AbortOn(err, "open %s: %v", path, err)
	defer f.Drop()

	_, err = io.Copy(c.out, f)
	core.AbortOn(err, "read %s: %v", path, err)
}

func (c *commandSet) append(path string, text string) {
	f, err := bufrw.OpenFile(path, c.bufferSize, os.O_CREATE, 0666)
	core.AbortOn(err, "open %s: %v", path, err)
	defer f.Drop()

	_, err = f.Seek(0, io.SeekEnd)
	core.AbortOn(err, "seek %s: %v", path, err)
	n, err := f.WriteString(text + "\n")
	core.AbortOn(err, "write %s: %v", path, err)
	size, err := f.Size()
	core.AbortOn(err, "write %s: %v", path, err)
	core.AbortOn(f.Close(), "close %s", path)

	fmt.Fprintf(c.out, "Appended %d bytes to %s (%s)\n", n, core.Escape(path), core.HumanSize(size))
}

// replace overwrites every occurrence of old with replacement in place while the
// file is being scanned, switching between reading and writing on one handle.
func (c *commandSet) replace(path string, old string, replacement string) int {
	if len(old) == 0 || len(old) != len(replacement) {
		core.Abort("replacement must have the same non-zero length as the text it replaces")
	}
	f, err := bufrw.OpenFile(path, c.bufferSize, os.O_RDWR, 0)
	core.AbortOn(err, "open %s: %v", path, err)
	defer f.Drop()

	match := []byte(old)
	window := make([]byte, 0, len(match))
	count := 0
	for {
		b, err := f.ReadByte()
		if err == io.EOF {
			break
		}
		core.AbortOn(err, "read %s: %v", path, err)

		if len(window) == len(match) {
			copy(window, window[1:])
			window = window[:len(window)-1]
		}
		window = append(window, b)
		if !bytes.Equal(window, match) {
			continue
		}

		pos, err := f.Seek(0, io.SeekCurrent)
		core.AbortOn(err, "seek %s: %v", path, err)
		_, err = f.Seek(pos-int64(len(match)), io.SeekStart)
		core.AbortOn(err, "seek %s: %v", path, err)
		_, err = f.WriteString(replacement)
		core.AbortOn(err, "write %s: %v", path, err)
		window = window[:0]
		count++
		core.Log(core.LogDebug, "Replaced %q at offset %d", old, pos-int64(len(match)))
	}
	core.AbortOn(f.Close(), "close %s", path)

	fmt.Fprintf(c.out, "Replaced %d occurrences in %s\n", count, core.Escape(path))
	return count
}

// ChunkWindow is the number of trailing bytes the rolling sum covers, it is
// also the smallest chunk chunks will cut.
const ChunkWindow = 64

// chunks splits a file where the rolling sum of the last ChunkWindow bytes has
// its low bits all set. Boundaries depend only on nearby content, so an
// insertion only moves the chunks around it.
func (c *commandSet) chunks(path string, bits int) []int64 {
	core.ASSERT(bits > 0 && bits < 32, "bits out of range")
	f, err := bufrw.OpenFile(path, c.bufferSize, os.O_RDONLY, 0)
	core.AbortOn(err, "open %s: %v", path, err)
	defer f.Drop()

	mask := uint32(1)<<bits - 1
	var sum rollsum.Rollsum
	sum.Init()
	var window [ChunkWindow]byte

	var boundaries []int64
	var offset, start int64
	cut := func() {
		fmt.Fprintf(c.out, "%d\t%d\n", start, offset-start)
		boundaries = append(boundaries, offset)
		start = offset
	}
	for {
		b, err := f.ReadByte()
		if err == io.EOF {
			break
		}
		core.AbortOn(err, "read %s: %v", path, err)

		i := offset % ChunkWindow
		if offset >= ChunkWindow {
			sum.Rollout(window[i])
		}
		sum.Rollin(b)
		window[i] = b
		offset++

		if offset-start >= ChunkWindow && sum.Digest()&mask == mask {
			cut()
		}
	}
	if offset > start {
		cut()
	}
	if len(boundaries) > 0 {
		fmt.Fprintf(c.out, "%d chunks, average %s\n", len(boundaries), core.HumanSize(offset/int64(len(boundaries))))
	}
	return boundaries
}

//********************************************************************************//
//                                 Network commands                               //
//********************************************************************************//

func (c *commandSet) echo(address string, messages []string) {
	conn, err := net.DialTimeout("tcp", address, c.timeout)
	core.AbortOn(err, "dial %s: %v", address, err)
	s := bufrw.NewSequentialSize(core.NewTimeoutConn(conn, c.timeout), c.bufferSize)
	defer s.Drop()

	frame.Exchange(s, &frame.Message{Type: frame.MsgTypeGreeting})
	for _, m := range messages {
		start := time.Now()
		reply := frame.Exchange(s, &frame.Message{Type: frame.MsgTypeEcho, Data: []byte(m)})
		fmt.Fprintf(c.out, "%s (%s, %v)\n", core.Escape(string(reply.Data)), core.ShortHumanSize(int64(len(reply.Data))), time.Since(start).Round(time.Microsecond))
	}
	frame.Exchange(s, &frame.Message{Type: frame.MsgTypeGoodbye})
	core.AbortOn(s.Close())
}

func (c *commandSet) listenAndServe(address string) {
	listener, err := net.Listen("tcp", address)
	core.AbortOn(err, "listen %s: %v", address, err)
	core.Log(core.LogInfo, "Listening on %s", listener.Addr())

	signalchan := make(chan os.Signal, 1)
	signal.Notify(signalchan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signalchan
		core.Log(core.LogInfo, "Received OS signal: %v", sig)
		listener.Close()
	}()

	served := c.serve(listener)
	core.Log(core.LogInfo, "Served %d connections", served)
}

// serve accepts connections until the listener is closed and waits for the
// open ones to finish. At most maxConn connections are handled at a time,
// further ones wait in the accept backlog.
func (c *commandSet) serve(listener net.Listener) int {
	var g errgroup.Group
	if c.maxConn > 0 {
		g.SetLimit(c.maxConn)
	}
	served := 0
	for {
		conn, err := listener.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				core.Log(core.LogError, "Accept failed: %v", err)
			}
			break
		}
		served++
		g.Go(func() error {
			c.handleConnection(conn)
			return nil
		})
	}
	g.Wait()
	return served
}

func (c *commandSet) handleConnection(conn net.Conn) {
	remoteID := conn.RemoteAddr().String()
	core.Log(core.LogDebug, "%s = Connection established", remoteID)

	s := bufrw.NewSequentialSize(core.NewTimeoutConn(conn, c.timeout), c.bufferSize)
	defer func() {
		if err := recover(); err != nil {
			level := core.LogError
			if e, ok := err.(error); ok && (errors.Is(e, io.EOF) || errors.Is(e, io.ErrUnexpectedEOF)) {
				level = core.LogDebug
			}
			core.Log(level, "%s ! %v", remoteID, err)
		}
		s.Drop()
		core.Log(core.LogDebug, "%s = Connection closed", remoteID)
	}()

	for keepAlive := true; keepAlive; {
		msg := frame.ReadMessage(s)
		core.Log(core.LogTrace, "%s > %s (%d bytes)", remoteID, msg, len(msg.Data))

		var reply *frame.Message
		switch msg.Type {
		case frame.MsgTypeGreeting:
			reply = msg.Reply(nil)
		case frame.MsgTypeEcho:
			reply = msg.Reply(msg.Data)
		case frame.MsgTypeGoodbye:
			reply = msg.Reply(nil)
			keepAlive = false
		default:
			reply = &frame.Message{Type: frame.MsgTypeError & frame.MsgTypeServerMask, Data: []byte(fmt.Sprintf("unknown message %q", msg.String()))}
			keepAlive = false
		}
		frame.WriteMessage(s, reply)
		core.AbortOn(s.Flush())
	}
}

//********************************************************************************//
//                                     Selftest                                   //
//********************************************************************************//

// selftest pushes total bytes of frames through an in-memory loopback,
// reading one frame back after every second write so that read-ahead has to
// be retained across the switch to writing.
func (c *commandSet) selftest(total int) {
	lb := &memstream.Loopback{}
	s := bufrw.NewSequentialSize(lb, c.bufferSize)
	defer s.Drop()

	bufsize := s.BufferSize()
	sizes := []int{1, 17, 511, bufsize - 1, bufsize + 1, 65536}
	start := time.Now()

	var pending [][]byte
	var sent, received, frames int
	check := func() {
		msg := frame.ReadMessage(s)
		if !bytes.Equal(msg.Data, pending[0]) {
			core.Abort("selftest: frame %d came back corrupted", frames)
		}
		pending = pending[1:]
		received += len(msg.Data)
		frames++
	}
	for i := 0; sent < total; i++ {
		p := make([]byte, min(sizes[i%len(sizes)], total-sent))
		for j := range p {
			p[j] = byte(i + j)
		}
		frame.WriteMessage(s, &frame.Message{Type: frame.MsgTypeEcho, Data: p})
		pending = append(pending, p)
		sent += len(p)
		if i%2 == 1 {
			check()
		}
	}
	for len(pending) > 0 {
		check()
	}
	core.ASSERT(received == sent, "selftest byte count mismatch")
	stats := core.MemoryStats()
	core.AbortOn(s.Close())

	fmt.Fprintf(c.out, "Selftest passed: %s in %d frames through a %d byte buffer (%v)\n", core.HumanSize(int64(received)), frames, bufsize, time.Since(start).Round(time.Millisecond))
	fmt.Fprintln(c.out, stats)
}
