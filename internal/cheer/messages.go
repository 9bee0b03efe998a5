package cheer

// feedCapacity is how many messages the feed keeps before overwriting.
const feedCapacity = 60

// Message is a single line in the message feed.
type Message struct {
	Tick int
	Text string
}

// MessageFeed is a ring buffer of human-readable debug messages, the
// in-battle equivalent of an on-screen notification list.
type MessageFeed struct {
	entries []Message
	head    int
	count   int
}

// NewMessageFeed creates a feed with a fixed capacity.
func NewMessageFeed() *MessageFeed {
	return &MessageFeed{
		entries: make([]Message, feedCapacity),
	}
}

// Add appends a message, overwriting the oldest once full.
func (mf *MessageFeed) Add(tick int, text string) {
	mf.entries[mf.head] = Message{Tick: tick, Text: text}
	mf.head = (mf.head + 1) % feedCapacity
	if mf.count < feedCapacity {
		mf.count++
	}
}

// Len is the number of stored messages.
func (mf *MessageFeed) Len() int {
	return mf.count
}

// Recent returns messages in chronological order (oldest first).
func (mf *MessageFeed) Recent() []Message {
	result := make([]Message, mf.count)
	for i := 0; i < mf.count; i++ {
		idx := (mf.head - mf.count + i + feedCapacity) % feedCapacity
		result[i] = mf.entries[idx]
	}
	return result
}
