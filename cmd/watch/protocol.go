package watch

import (
	"encoding/json"
	"time"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
)

const (
	routeIndex  = "/"
	routeEvents = "/events"
	routeGraph  = "/graph.json"
)

const sseEventGraph = "graph"

// graphSnapshot is the payload of one SSE "graph" event: a full element list for the
// current inputs.
type graphSnapshot struct {
	ID          int64                 `json:"id"`
	Timestamp   time.Time             `json:"timestamp"`
	Cached      bool                  `json:"cached"`
	Elements    []depgraph.Element    `json:"elements"`
	Cycles      []depgraph.Cycle      `json:"cycles"`
	Diagnostics []depgraph.Diagnostic `json:"diagnostics,omitempty"`
}

// timeline numbers snapshots in publish order.
type timeline struct {
	lastID int64
	now    func() time.Time
}

func newTimeline() *timeline {
	return &timeline{now: time.Now}
}

func (tl *timeline) encode(result depgraph.Result, cached bool) (frame, error) {
	tl.lastID++

	cycles := result.Cycles
	if cycles == nil {
		cycles = []depgraph.Cycle{}
	}
	data, err := json.Marshal(graphSnapshot{
		ID:          tl.lastID,
		Timestamp:   tl.now().UTC(),
		Cached:      cached,
		Elements:    result.Elements(),
		Cycles:      cycles,
		Diagnostics: result.Diagnostics,
	})
	if err != nil {
		return frame{}, err
	}
	return frame{id: tl.lastID, data: string(data)}, nil
}
