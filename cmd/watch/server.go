package watch

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// frame is one encoded graph snapshot with its SSE event id.
type frame struct {
	id   int64
	data string
}

// broker fans graph frames out to connected SSE clients and remembers the latest one.
type broker struct {
	mu      sync.Mutex
	clients map[chan frame]struct{}
	latest  frame
}

func newBroker() *broker {
	return &broker{
		clients: make(map[chan frame]struct{}),
	}
}

// subscribe registers a client. The latest frame is replayed unless the client already
// saw it, as reported by its Last-Event-ID.
func (b *broker) subscribe(lastEventID int64) chan frame {
	ch := make(chan frame, 1)
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clients[ch] = struct{}{}
	if b.latest.id > lastEventID {
		ch <- b.latest
	}
	return ch
}

func (b *broker) unsubscribe(ch chan frame) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.clients, ch)
	close(ch)
}

// publish replaces the latest frame. A client still holding an unread frame skips this
// one and catches up on the next publish.
func (b *broker) publish(f frame) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.latest = f
	for ch := range b.clients {
		select {
		case ch <- f:
		default:
		}
	}
}

func (b *broker) current() (frame, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest, b.latest.id > 0
}

func (b *broker) clientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

func newServer(b *broker, port int) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc(routeIndex, handleIndex)
	mux.HandleFunc(routeEvents, handleSSE(b))
	mux.HandleFunc(routeGraph, handleGraph(b))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routeIndex {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(indexHTML)); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// handleGraph serves the latest snapshot as a plain JSON document.
func handleGraph(b *broker) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		f, ok := b.current()
		if !ok {
			http.Error(w, "graph not built yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write([]byte(f.data))
	}
}

func handleSSE(b *broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		// A malformed header replays the latest frame.
		lastEventID, _ := strconv.ParseInt(r.Header.Get("Last-Event-ID"), 10, 64)
		ch := b.subscribe(lastEventID)
		defer b.unsubscribe(ch)

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case f, ok := <-ch:
				if !ok {
					return
				}
				writeFrame(w, f)
				flusher.Flush()
			}
		}
	}
}

func writeFrame(w http.ResponseWriter, f frame) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "id: %d\n", f.id)
	fmt.Fprintf(&sb, "event: %s\n", sseEventGraph)
	for _, line := range strings.Split(f.data, "\n") {
		fmt.Fprintf(&sb, "data: %s\n", line)
	}
	sb.WriteString("\n")
	_, _ = w.Write([]byte(sb.String()))
}
