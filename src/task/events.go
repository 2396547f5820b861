package task

import "time"

// TaskEvent marks a stage boundary of a Task.
type TaskEvent struct {
	JobID     string
	Type      TaskEventType
	Timestamp time.Time
}

type TaskEventType string

const (
	Started   TaskEventType = "started"
	Read      TaskEventType = "read"
	Failed    TaskEventType = "failed"
	Completed TaskEventType = "completed"

	// stage one
	Decoding TaskEventType = "decoding"
	Decoded  TaskEventType = "decoded"

	// stage two
	Transforming TaskEventType = "transforming"
	Transformed  TaskEventType = "transformed"

	// stage three
	Writing TaskEventType = "writing"
	Written TaskEventType = "written"
)

// Since returns how long after e each later event in events happened, keyed
// by event type.
func Since(e TaskEvent, events []TaskEvent) map[TaskEventType]time.Duration {
	out := make(map[TaskEventType]time.Duration, len(events))
	for _, v := range events {
		if v.Timestamp.Before(e.Timestamp) {
			continue
		}
		out[v.Type] = v.Timestamp.Sub(e.Timestamp)
	}
	return out
}
