package trait

import (
	"github.com/stencilkit/stencil/topic"
)

// Trait identifiers for the MQTT binding traits.
const (
	PublishID   = "mqttPublish"
	SubscribeID = "mqttSubscribe"
)

// Publish binds an operation to the MQTT topic its messages are
// published to. Wildcards are rejected at construction.
type Publish struct {
	StringTrait
	topic *topic.Topic
}

// NewPublish parses and validates a publish-direction topic template.
func NewPublish(value string, loc SourceLocation) (*Publish, error) {
	t, err := topic.Parse(value, topic.Publish)
	if err != nil {
		return nil, modelErr(PublishID, loc, err)
	}
	return &Publish{
		StringTrait: StringTrait{ID: PublishID, Value: value, Location: loc},
		topic:       t,
	}, nil
}

// Topic returns the parsed publish topic.
func (t *Publish) Topic() *topic.Topic {
	return t.topic
}

// Subscribe binds an operation to the MQTT topic filter it receives
// messages on. Wildcards are permitted under subscribe rules.
type Subscribe struct {
	StringTrait
	topic *topic.Topic
}

// NewSubscribe parses and validates a subscribe-direction topic template.
func NewSubscribe(value string, loc SourceLocation) (*Subscribe, error) {
	t, err := topic.Parse(value, topic.Subscribe)
	if err != nil {
		return nil, modelErr(SubscribeID, loc, err)
	}
	return &Subscribe{
		StringTrait: StringTrait{ID: SubscribeID, Value: value, Location: loc},
		topic:       t,
	}, nil
}

// Topic returns the parsed subscribe topic filter.
func (t *Subscribe) Topic() *topic.Topic {
	return t.topic
}
