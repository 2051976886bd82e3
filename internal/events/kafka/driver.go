package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"modlaunch/internal/events"
)

type Config struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Acks    int16    `yaml:"required_acks"` // 0,1,-1
}

type driver struct {
	cfg Config
	p   sarama.SyncProducer
}

func (d *driver) Configure(c any) error {
	cfg, ok := c.(Config)
	if !ok {
		return fmt.Errorf("kafka-events: want Config, got %T", c)
	}
	d.cfg = cfg

	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.RequiredAcks(cfg.Acks)
	sc.Producer.Return.Successes = true
	var err error
	d.p, err = sarama.NewSyncProducer(cfg.Brokers, sc)
	return err
}

// Emit blocks until the broker acks; launcher events are low volume and
// must not outlive shutdown.
func (d *driver) Emit(ev events.Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, _, err = d.p.SendMessage(&sarama.ProducerMessage{
		Topic: d.cfg.Topic,
		Key:   sarama.StringEncoder(ev.RunID),
		Value: sarama.ByteEncoder(b),
	})
	return err
}

func (d *driver) Close() error {
	if d.p == nil {
		return nil
	}
	return d.p.Close()
}

func init() { events.Register("kafka", func() events.Adapter { return &driver{} }) }
