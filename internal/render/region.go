package render

// MessageKind selects the style of a status message
type MessageKind int

const (
	KindSuccess MessageKind = iota
	KindError
)

// Message is a transient status message
type Message struct {
	Text string
	Kind MessageKind
}

// Render styles the message
func (m Message) Render() string {
	if m.Kind == KindError {
		return StyleError.Render(m.Text)
	}
	return StyleSuccess.Render(m.Text)
}

// Region is a display area holding at most one message.
// Each Set bumps the generation; a clear request carrying an older
// generation is ignored so it cannot remove a newer message.
type Region struct {
	msg *Message
	gen uint64
}

// Set shows a message and returns its generation
func (r *Region) Set(text string, kind MessageKind) uint64 {
	r.gen++
	r.msg = &Message{Text: text, Kind: kind}
	return r.gen
}

// Clear removes the message if gen is still current
func (r *Region) Clear(gen uint64) bool {
	if gen != r.gen || r.msg == nil {
		return false
	}
	r.msg = nil
	return true
}

// Current returns the visible message
func (r *Region) Current() (Message, bool) {
	if r.msg == nil {
		return Message{}, false
	}
	return *r.msg, true
}

// Generation returns the generation of the latest Set
func (r *Region) Generation() uint64 {
	return r.gen
}
