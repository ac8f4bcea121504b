package render

// RenderQueue is an ordered list of geometry buffers drawn in one pass
type RenderQueue struct {
	buffers []GeometryBuffer
}

// Add appends buf; a buffer may appear only once.
func (q *RenderQueue) Add(buf GeometryBuffer) {
	for _, b := range q.buffers {
		if b == buf {
			return
		}
	}
	q.buffers = append(q.buffers, buf)
}

// Remove drops buf if present
func (q *RenderQueue) Remove(buf GeometryBuffer) {
	for i, b := range q.buffers {
		if b == buf {
			q.buffers = append(q.buffers[:i], q.buffers[i+1:]...)
			return
		}
	}
}

func (q *RenderQueue) Reset()                    { q.buffers = q.buffers[:0] }
func (q *RenderQueue) Len() int                  { return len(q.buffers) }
func (q *RenderQueue) Buffers() []GeometryBuffer { return q.buffers }

// Draw draws every buffer in insertion order
func (q *RenderQueue) Draw() {
	for _, b := range q.buffers {
		b.Draw()
	}
}

// QueueID orders the queues of a rendering surface
type QueueID int

const (
	QueueUser0 QueueID = iota
	QueueUnderlay
	QueueUser1
	QueueBase
	QueueUser2
	QueueContent1
	QueueUser3
	QueueContent2
	QueueUser4
	QueueOverlay
	QueueUser5
)

var queueNames = [...]string{
	"User0", "Underlay", "User1", "Base", "User2", "Content1",
	"User3", "Content2", "User4", "Overlay", "User5",
}

// String returns the string representation of the queue ID
func (id QueueID) String() string {
	if id < 0 || int(id) >= len(queueNames) {
		return "unknown"
	}
	return queueNames[id]
}
