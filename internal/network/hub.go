package network

// clientMessage pairs an inbound message with the console that sent it.
type clientMessage struct {
	client *Client
	msg    Message
}

// Hub keeps the set of connected consoles and routes events to the
// handler. The clients map is touched only by the hub goroutine.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	incoming   chan clientMessage
	broadcast  chan Message

	handler EventHandler
}

// NewHub creates a hub wired to the given handler.
func NewHub(handler EventHandler) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		broadcast:  make(chan Message, 16),
		handler:    handler,
	}
}

// Broadcast queues a message for every connected console. Safe to call
// from any goroutine.
func (h *Hub) Broadcast(msg Message) {
	h.broadcast <- msg
}

// Run is the hub's actor loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.handler.OnConnect(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// Closing send stops the client's writeLoop.
				close(client.send)
				h.handler.OnDisconnect(client)
			}

		case clientMsg := <-h.incoming:
			h.handler.OnMessage(clientMsg.client, clientMsg.msg)

		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// Console too slow to drain its queue; drop the
					// update rather than stall the hub.
				}
			}
		}
	}
}
