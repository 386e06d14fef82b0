package protocol

// FullBacklog asks the server for no catch-up cursor, i.e. the default
// backlog the server chooses to replay.
const FullBacklog int64 = -1

// Outbound is one client-to-server message payload.
type Outbound interface {
	outboundType() string
}

// Hello announces the client after a successful socket upgrade. It is sent
// exactly once per established connection, before any other outbound traffic.
type Hello struct {
	LastMessage int64 `json:"last_message"`
}

// Message carries user-entered text. Reply of 0 means no reply target.
type Message struct {
	Reply uint64 `json:"reply"`
	Text  string `json:"text"`
}

func (Hello) outboundType() string { return "hello" }

func (Message) outboundType() string { return "message" }

// NewHello builds the post-connect hello frame requesting the full backlog.
func NewHello() Hello {
	return Hello{LastMessage: FullBacklog}
}

// NewMessage builds a chat message frame. A nil reply target encodes as 0.
func NewMessage(text string, reply uint64) Message {
	return Message{Reply: reply, Text: text}
}
