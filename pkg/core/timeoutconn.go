//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

package core

import (
	"net"
	"time"
)

const DefaultConnectionTimeout = 15 * time.Minute

// TimeoutConn renews the read or write deadline of a net.Conn before every
// operation, so a stalled peer fails the call instead of blocking forever.
type TimeoutConn struct {
	conn    net.Conn
	timeout time.Duration
}

func NewTimeoutConn(c net.Conn, t time.Duration) *TimeoutConn {
	if t <= 0 {
		t = DefaultConnectionTimeout
	}
	return &TimeoutConn{c, t}
}

func (t *TimeoutConn) Conn() net.Conn {
	return t.conn
}

func (t *TimeoutConn) Close() error {
	return t.conn.Close()
}

func (t *TimeoutConn) Read(b []byte) (n int, err error) {
	if err = t.conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
		return 0, err
	}
	return t.conn.Read(b)
}

func (t *TimeoutConn) Write(b []byte) (n int, err error) {
	if err = t.conn.SetWriteDeadline(time.Now().Add(t.timeout)); err != nil {
		return 0, err
	}
	return t.conn.Write(b)
}
