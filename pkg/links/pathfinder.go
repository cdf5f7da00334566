package links

// LinkSource yields the categorized links of a page. *Finder is the
// production implementation.
type LinkSource interface {
	Analyze(pageURL string) (*PageLinks, error)
}

// Event is one progress step of a path search, streamed to the client as it
// happens.
type Event struct {
	Event string   `json:"event"`
	URL   string   `json:"url,omitempty"`
	Path  []string `json:"path"`
	Depth int      `json:"depth"`
	Error string   `json:"error,omitempty"`
}

// PathFinder searches for a chain of links from a start page to a target
// URL with a bounded depth-first walk. A visited set stops revisits; there
// is no stronger cycle handling than that.
type PathFinder struct {
	source   LinkSource
	maxDepth int
}

func NewPathFinder(source LinkSource, maxDepth int) *PathFinder {
	if maxDepth <= 0 {
		maxDepth = 3
	}
	return &PathFinder{source: source, maxDepth: maxDepth}
}

// Find walks from start looking for end, emitting a visit event per page, an
// error event for pages that fail to fetch, and a found event on success.
// It returns the path of URLs from start to end, or nil when no path exists
// within the depth bound. Regular main-text links are explored before
// navigation links.
func (pf *PathFinder) Find(start, end string, emit func(Event)) []string {
	if emit == nil {
		emit = func(Event) {}
	}

	visited := make(map[string]bool)
	var found []string

	var search func(current string, path []string, depth int)
	search = func(current string, path []string, depth int) {
		if depth >= pf.maxDepth || found != nil || visited[current] {
			return
		}
		visited[current] = true

		next := append(append([]string{}, path...), current)
		emit(Event{Event: "visit", URL: current, Path: next, Depth: depth})

		if current == end {
			found = next
			emit(Event{Event: "found", Path: next})
			return
		}

		page, err := pf.source.Analyze(current)
		if err != nil {
			emit(Event{Event: "error", URL: current, Error: err.Error(), Path: next, Depth: depth})
			return
		}

		for _, link := range page.CrawlOrder() {
			if found != nil {
				break
			}
			if !visited[link] {
				search(link, next, depth+1)
			}
		}
	}

	search(start, nil, 0)
	return found
}
