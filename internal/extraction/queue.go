package extraction

// ImageQueue hands out discovered image URLs first-in first-out. One queue is
// shared by every chunk of a run; it is never refilled or reset between chunks.
type ImageQueue struct {
	urls []string
}

// NewImageQueue creates a queue over a copy of urls, preserving order and duplicates
func NewImageQueue(urls []string) *ImageQueue {
	return &ImageQueue{urls: append([]string(nil), urls...)}
}

// Len returns the number of URLs not yet assigned
func (q *ImageQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.urls)
}

// Pop removes and returns the head of the queue
func (q *ImageQueue) Pop() (string, bool) {
	if q.Len() == 0 {
		return "", false
	}
	head := q.urls[0]
	q.urls = q.urls[1:]
	return head, true
}

// Remaining returns a snapshot of the unassigned URLs
func (q *ImageQueue) Remaining() []string {
	if q.Len() == 0 {
		return []string{}
	}
	return append([]string(nil), q.urls...)
}
