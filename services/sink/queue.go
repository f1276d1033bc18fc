package sink

import (
	"calorie-tracker/enums"
	"calorie-tracker/structs"
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// Publisher is the part of the rabbitmq connection the queue sink needs.
type Publisher interface {
	Publish(queue, messageID string, body []byte) error
	Close() error
}

// Queue publishes every row as a JSON message; the worker stores them.
type Queue struct {
	publisher Publisher
}

func NewQueue(publisher Publisher) *Queue {
	return &Queue{publisher: publisher}
}

func (q *Queue) AppendEntry(ctx context.Context, row structs.EntryRow) error {
	return q.publish(enums.EntriesQueue, row.ID, row)
}

func (q *Queue) AppendGoalSummary(ctx context.Context, row structs.GoalSummaryRow) error {
	return q.publish(enums.GoalSummaryQueue, uuid.NewString(), row)
}

func (q *Queue) AppendWeekTotal(ctx context.Context, row structs.WeekTotalRow) error {
	return q.publish(enums.WeekTotalQueue, uuid.NewString(), row)
}

func (q *Queue) Close() error {
	return q.publisher.Close()
}

func (q *Queue) publish(queue, messageID string, row interface{}) error {
	body, err := json.Marshal(row)
	if err != nil {
		return writeFailure(enums.QueueSink, queue, err)
	}
	if err := q.publisher.Publish(queue, messageID, body); err != nil {
		return writeFailure(enums.QueueSink, queue, err)
	}
	return nil
}
