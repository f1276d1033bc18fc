package worker

import (
	"calorie-tracker/enums"
	"calorie-tracker/models"
	"calorie-tracker/services/rabbitmq"
	"calorie-tracker/services/sink"
	"calorie-tracker/services/trackLog"
	"calorie-tracker/structs"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// WorkerService stores the rows published by the queue sink.
type WorkerService struct {
	sync.Mutex
	db        *gorm.DB
	store     sink.Sink
	logger    *logrus.Logger
	statistic structs.StatisticModel
	Errors    []structs.ErrorModel
}

func NewWorkerService(db *gorm.DB, store sink.Sink, logger *logrus.Logger) *WorkerService {
	if logger == nil {
		logger = logrus.New()
		logger.Out = io.Discard
	}
	return &WorkerService{db: db, store: store, logger: logger}
}

// Start connects, declares the three queues and begins consuming them in the background.
func (w *WorkerService) Start(ctx context.Context, conn *rabbitmq.Connection) error {
	if err := conn.Connect(); err != nil {
		return err
	}
	if err := conn.BindQueue(); err != nil {
		return err
	}
	deliveries, err := conn.Consume()
	if err != nil {
		return err
	}

	go conn.HandleConsumedDeliveries(ctx, deliveries, func(queue string, deliveries <-chan amqp.Delivery) {
		w.Handle(ctx, queue, deliveries)
	})
	trackLog.Info(fmt.Sprintf(" [ %s ] %v Waiting for messages. To exit press CTRL+C", enums.ConnectionName, conn.Queues), true)
	return nil
}

// Handle processes deliveries until the channel closes or ctx is done. A stored message
// is acked; a failed one is nacked without requeue since it is already in the activity log.
func (w *WorkerService) Handle(ctx context.Context, queue string, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			w.settle(ctx, queue, d)
		}
	}
}

func (w *WorkerService) settle(ctx context.Context, queue string, d amqp.Delivery) {
	trackLog.Info(fmt.Sprintf("Queue[%s] 接受資料: %s", queue, string(d.Body)), true)
	if err := w.Process(ctx, queue, d.Body); err != nil {
		trackLog.Error(fmt.Sprintf("Queue[%s] 處理失敗: %s", queue, err.Error()), true)
		if nackErr := d.Nack(false, false); nackErr != nil {
			w.logger.WithFields(logrus.Fields{"task": "worker", "queue": queue, "error_message": nackErr.Error()}).Error("nack 失敗")
		}
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		w.logger.WithFields(logrus.Fields{"task": "worker", "queue": queue, "error_message": ackErr.Error()}).Error("ack 失敗")
	}
}

// Process decodes one message body and writes it through the store.
func (w *WorkerService) Process(ctx context.Context, queue string, body []byte) error {
	err := w.dispatch(ctx, queue, body)

	w.Lock()
	w.statistic.TotalMessage++
	if err != nil {
		w.statistic.FailMessage++
		w.Errors = append(w.Errors, structs.ErrorModel{Queue: queue, ErrorMessage: err.Error()})
	} else {
		w.statistic.OKMessage++
	}
	w.Unlock()

	if logErr := w.insertActivityLog(queue, err); logErr != nil {
		w.logger.WithFields(logrus.Fields{"task": "worker", "queue": queue, "error_message": logErr.Error()}).Error("activity log 寫入失敗")
	}
	return err
}

func (w *WorkerService) dispatch(ctx context.Context, queue string, body []byte) error {
	switch queue {
	case enums.EntriesQueue:
		var row structs.EntryRow
		if err := json.Unmarshal(body, &row); err != nil {
			return fmt.Errorf("decode %s: %w", queue, err)
		}
		return w.store.AppendEntry(ctx, row)
	case enums.GoalSummaryQueue:
		var row structs.GoalSummaryRow
		if err := json.Unmarshal(body, &row); err != nil {
			return fmt.Errorf("decode %s: %w", queue, err)
		}
		return w.store.AppendGoalSummary(ctx, row)
	case enums.WeekTotalQueue:
		var row structs.WeekTotalRow
		if err := json.Unmarshal(body, &row); err != nil {
			return fmt.Errorf("decode %s: %w", queue, err)
		}
		return w.store.AppendWeekTotal(ctx, row)
	default:
		return fmt.Errorf("unknown queue %q", queue)
	}
}

func (w *WorkerService) Statistic() structs.StatisticModel {
	w.Lock()
	defer w.Unlock()
	return w.statistic
}

// 塞入執行紀錄的 log table
func (w *WorkerService) insertActivityLog(queue string, processErr error) error {
	if w.db == nil {
		return nil
	}

	var activityLogJSONModel structs.ActivityLogJsonModel
	activityLogJSONModel.Queue = queue
	activityLogJSONModel.Result = processErr == nil
	activityLogJSONModel.Statistic = w.Statistic()
	if processErr == nil {
		activityLogJSONModel.Message = "ok"
	} else {
		activityLogJSONModel.Message = processErr.Error()
		activityLogJSONModel.Messages = append(activityLogJSONModel.Messages, structs.ErrorModel{Queue: queue, ErrorMessage: processErr.Error()})
	}
	activityLogJSON, _ := json.Marshal(activityLogJSONModel)

	insertTime := time.Now()
	var activityLogEntity models.ActivityLog
	activityLogEntity.CreatedAt = &insertTime
	activityLogEntity.UpdatedAt = &insertTime
	activityLogEntity.LogName = "calorie-tracker.worker." + queue
	activityLogEntity.Description = "calorie-tracker worker log"
	activityLogEntity.Properties = string(activityLogJSON)

	return w.db.Create(&activityLogEntity).Error
}
