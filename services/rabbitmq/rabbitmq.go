package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

// Connection is the connection created
type Connection struct {
	sync.Mutex
	name    string
	domain  string
	Conn    *amqp.Connection
	Channel *amqp.Channel
	Queues  []string
	Err     chan error
	ApiErr  chan error
}

var (
	poolMutex      sync.Mutex
	connectionPool = make(map[string]*Connection)
)

// NewConnection returns the new connection object
func NewConnection(name, domain string, queues []string) *Connection {
	poolMutex.Lock()
	defer poolMutex.Unlock()
	if c, ok := connectionPool[name]; ok {
		return c
	}
	c := &Connection{
		name:   name,
		domain: domain,
		Queues: queues,
		Err:    make(chan error, 1),
		ApiErr: make(chan error, 1),
	}
	connectionPool[name] = c
	return c
}

// GetConnection returns the connection which was instantiated
func GetConnection(name string) *Connection {
	poolMutex.Lock()
	defer poolMutex.Unlock()
	return connectionPool[name]
}

func (c *Connection) Connect() error {
	var err error
	c.Conn, err = amqp.Dial(c.domain)
	if err != nil {
		return fmt.Errorf("Error in creating rabbitmq connection with %s : %s", c.domain, err.Error())
	}
	go func(conn *amqp.Connection) {
		<-conn.NotifyClose(make(chan *amqp.Error)) //Listen to NotifyClose
		select {
		case c.Err <- errors.New("Connection Closed"):
		default:
		}
		select {
		case c.ApiErr <- errors.New("Api detect Connection Closed"):
		default:
		}
	}(c.Conn)
	c.Channel, err = c.Conn.Channel()
	if err != nil {
		return fmt.Errorf("Channel: %s", err)
	}
	return nil
}

func (c *Connection) BindQueue() error {
	for _, q := range c.Queues {
		if _, err := c.Channel.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("error in declaring the queue %s", err)
		}
	}
	return nil
}

// Reconnect reconnects the connection. It does nothing when another caller already
// brought it back.
func (c *Connection) Reconnect() error {
	c.Lock()
	defer c.Unlock()
	if c.Conn != nil && !c.Conn.IsClosed() {
		return nil
	}
	if err := c.Connect(); err != nil {
		return err
	}
	if err := c.BindQueue(); err != nil {
		return err
	}
	return nil
}

// Publish sends one persistent JSON message to the queue.
func (c *Connection) Publish(queue, messageID string, body []byte) error {
	c.Lock()
	defer c.Unlock()
	if c.Channel == nil {
		return errors.New("channel is not open")
	}
	return c.Channel.Publish("", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

// Consume opens a consumer per queue. Deliveries must be acked by the handler.
func (c *Connection) Consume() (map[string]<-chan amqp.Delivery, error) {
	c.Lock()
	defer c.Unlock()
	m := make(map[string]<-chan amqp.Delivery)
	for _, q := range c.Queues {
		deliveries, err := c.Channel.Consume(q, "", false, false, false, false, nil)
		if err != nil {
			return nil, err
		}
		m[q] = deliveries
	}
	return m, nil
}

// HandleConsumedDeliveries runs fn over every queue and, after the connection drops,
// reconnects once and restarts fn on the new delivery channel of every queue.
// It returns when ctx is done.
func (c *Connection) HandleConsumedDeliveries(ctx context.Context, deliveries map[string]<-chan amqp.Delivery, fn func(string, <-chan amqp.Delivery)) {
	superviseConsumers(ctx, c.Err, deliveries, func() (map[string]<-chan amqp.Delivery, error) {
		if err := c.Reconnect(); err != nil {
			return nil, err
		}
		return c.Consume()
	}, fn, reconnectDelay)
}

// 重連失敗後等多久再試
var reconnectDelay = 60 * time.Second

func superviseConsumers(ctx context.Context, errs <-chan error, deliveries map[string]<-chan amqp.Delivery,
	reconnect func() (map[string]<-chan amqp.Delivery, error), fn func(string, <-chan amqp.Delivery), delay time.Duration) {
	for {
		// 舊的 delivery channel 在連線斷掉時會被關閉，舊的 fn 自己結束
		for q, d := range deliveries {
			go fn(q, d)
		}

		select {
		case <-ctx.Done():
			return
		case err := <-errs:
			fmt.Println("connection lost:", err)
		}

		for {
			next, err := reconnect()
			if err == nil {
				fmt.Println("reconnect ok")
				deliveries = next
				break
			}
			fmt.Println("reconnect fail:", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}
	}
}

func (c *Connection) Close() error {
	if c.Conn == nil {
		return nil
	}
	return c.Conn.Close()
}
