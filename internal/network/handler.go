package network

// EventHandler connects the network layer to the application logic. The
// console handler outside this package implements it.
type EventHandler interface {
	// OnConnect fires when a console client finishes connecting.
	OnConnect(c *Client)

	// OnDisconnect fires when a console client goes away.
	OnDisconnect(c *Client)

	// OnMessage fires for every inbound console message.
	OnMessage(c *Client, msg Message)
}
