package device

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
)

// Write deadline applied to every pad write. A pad that cannot take a
// 12-byte frame within this window is effectively gone.
const writeWait = 10 * time.Second

// TCPSource accepts pad connections on a TCP listener and feeds them into
// the pool. Real cabinets attach pads over serial; this source serves
// bench rigs and the fakepad bot, which speak the same line protocol over
// a socket.
type TCPSource struct {
	addr      string
	pool      *Pool
	logger    *zap.Logger
	nextIndex int
}

// NewTCPSource returns a source listening on addr once Run is called.
func NewTCPSource(addr string, pool *Pool, logger *zap.Logger) *TCPSource {
	return &TCPSource{
		addr:   addr,
		pool:   pool,
		logger: logger,
	}
}

// Run accepts connections until the listener fails. Each accepted
// connection becomes one pad in the pool.
func (s *TCPSource) Run() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("pad source listen on %s: %w", s.addr, err)
	}
	s.logger.Info("pad source listening", zap.String("addr", s.addr))

	for {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("pad source accept: %w", err)
		}
		index := s.nextIndex
		s.nextIndex++

		name := fmt.Sprintf("pad-%d", index)
		client := NewClient(name, index, newConnTransport(conn), s.logger)
		s.pool.Add(client)
		s.logger.Info("pad connected",
			zap.String("pad", name),
			zap.Int("index", index),
			zap.String("remote", conn.RemoteAddr().String()),
		)
	}
}

// connTransport adapts a net.Conn into a LineTransport. The read deadline
// comes from the caller's context, so a timeout only affects that read.
type connTransport struct {
	conn   net.Conn
	reader *bufio.Reader
}

func newConnTransport(conn net.Conn) *connTransport {
	return &connTransport{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

func (t *connTransport) ReadLine(ctx context.Context) (string, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := t.conn.SetReadDeadline(deadline); err != nil {
			return "", err
		}
	} else {
		if err := t.conn.SetReadDeadline(time.Time{}); err != nil {
			return "", err
		}
	}

	line, err := t.reader.ReadString('\n')
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}
	return line, nil
}

func (t *connTransport) WriteLine(line string) error {
	if err := t.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	_, err := t.conn.Write([]byte(line + "\n"))
	return err
}

func (t *connTransport) Close() error {
	return t.conn.Close()
}
