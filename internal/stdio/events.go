// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stdio

// Stream identifies which interpreter stream an event came from.
// StreamNone marks events raised by the driver itself.
type Stream int

const (
	StreamNone Stream = iota
	Stdin
	Stdout
	Stderr
)

func (s Stream) String() string {
	switch s {
	case Stdin:
		return "stdin"
	case Stdout:
		return "stdout"
	case Stderr:
		return "stderr"
	default:
		return "none"
	}
}

// EventKind tags an Event.
type EventKind int

const (
	// EventMessage carries one raw chunk of interpreter text.
	EventMessage EventKind = iota
	// EventProcessingStarted fires once per conversion when the page count
	// is first read from the banner.
	EventProcessingStarted
	// EventPage fires for every page announcement.
	EventPage
	// EventSpotColor fires the first time a separation name is seen.
	EventSpotColor
	// EventProcessingCompleted fires after outputs have been collected.
	EventProcessingCompleted
)

func (k EventKind) String() string {
	switch k {
	case EventMessage:
		return "message"
	case EventProcessingStarted:
		return "processing_started"
	case EventPage:
		return "page"
	case EventSpotColor:
		return "spot_color"
	case EventProcessingCompleted:
		return "processing_completed"
	default:
		return "unknown"
	}
}

// Event is a typed observation derived from the interpreter's output. Only
// the fields relevant to Kind are set.
type Event struct {
	Kind      EventKind
	Stream    Stream
	Text      string
	PageCount int
	Page      int
	SpotColor string
	Outputs   []string
}

// Listener receives events in the order they are produced.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Listeners fans an event out to several listeners in order.
type Listeners []Listener

func (ls Listeners) OnEvent(e Event) {
	for _, l := range ls {
		if l != nil {
			l.OnEvent(e)
		}
	}
}

// ChannelListener forwards events to ch. Sends block, so the reader must keep
// up or the interpreter stalls.
func ChannelListener(ch chan<- Event) Listener {
	return ListenerFunc(func(e Event) { ch <- e })
}
