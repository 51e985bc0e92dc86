// Package device models the connected hardware pads. The raw link (UART
// serial, bluetooth bridge, TCP bench rig) stays behind LineTransport;
// everything above it only ever reads and writes whole lines.
package device

import (
	"context"

	"go.uber.org/zap"
)

// LineTransport is the line-based primitive a pad link must expose.
// ReadLine blocks until a full line arrives, the context deadline passes,
// or the link fails. Implementations must honor the context deadline so a
// stalled pad only stalls its own read.
type LineTransport interface {
	ReadLine(ctx context.Context) (string, error)
	WriteLine(line string) error
	Close() error
}

// Client is one connected hardware pad: a logical name, its discovery
// index and the transport it speaks over. Clients are owned by the pool
// and only borrowed by sessions; the player slot a pad plays under is
// assigned by the session at bind time, not here.
type Client struct {
	name      string
	index     int
	transport LineTransport
	logger    *zap.Logger
}

// NewClient wraps a transport as a named pad. index is the order the pad
// was discovered in; it identifies the physical port, nothing more.
func NewClient(name string, index int, t LineTransport, logger *zap.Logger) *Client {
	return &Client{
		name:      name,
		index:     index,
		transport: t,
		logger:    logger,
	}
}

// Name returns the pad's logical name.
func (c *Client) Name() string { return c.name }

// Index returns the pad's discovery index.
func (c *Client) Index() int { return c.index }

// ReadLine reads one full line from the pad, bounded by ctx.
func (c *Client) ReadLine(ctx context.Context) (string, error) {
	return c.transport.ReadLine(ctx)
}

// WriteLine writes one line to the pad.
func (c *Client) WriteLine(line string) error {
	return c.transport.WriteLine(line)
}

// Close tears down the underlying link.
func (c *Client) Close() error {
	c.logger.Info("closing pad", zap.String("pad", c.name))
	return c.transport.Close()
}
