package hooks

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/sirupsen/logrus"
)

const topicUserRegistered = "user.registered"

// Notifier fans registration events out over an in-memory pub/sub
// channel. The subscriber stands in for the mail collaborator: sends
// are fire-and-forget and a failed send never reaches the caller.
type Notifier struct {
	pubSub *gochannel.GoChannel
}

func NewNotifier() *Notifier {
	return &Notifier{
		pubSub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false)),
	}
}

// Start subscribes the notification consumer. Runs until ctx is done.
func (n *Notifier) Start(ctx context.Context) error {
	messages, err := n.pubSub.Subscribe(ctx, topicUserRegistered)
	if err != nil {
		return err
	}
	go func() {
		for msg := range messages {
			var event UserCreated
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				logrus.WithError(err).Warn("discarding malformed registration event")
				msg.Ack()
				continue
			}
			logrus.WithFields(logrus.Fields{
				"email": event.Email,
				"role":  event.Role,
			}).Info("welcome notification queued")
			msg.Ack()
		}
	}()
	return nil
}

// Hook returns the registry hook publishing registration events.
func (n *Notifier) Hook() func(UserCreated) error {
	return func(event UserCreated) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		return n.pubSub.Publish(topicUserRegistered, message.NewMessage(watermill.NewUUID(), payload))
	}
}

// Close shuts the underlying channel down.
func (n *Notifier) Close() error {
	return n.pubSub.Close()
}
