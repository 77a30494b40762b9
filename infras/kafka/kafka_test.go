package kafka_test

import (
	"context"
	"heritage/config"
	"heritage/infras/kafka"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingCreated struct {
	BookingID string `json:"booking_id"`
	Visitors  int    `json:"visitors"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := kafka.Message{Key: "place-1", Value: bookingCreated{BookingID: "b1", Visitors: 2}}

	msg, err := message.ToKafkaMessage("booking.created")
	require.NoError(t, err)

	assert.Equal(t, "booking.created", msg.Topic)
	assert.Equal(t, []byte("place-1"), msg.Key)

	decoded, err := kafka.Decode[bookingCreated](msg)
	require.NoError(t, err)
	assert.Equal(t, bookingCreated{BookingID: "b1", Visitors: 2}, decoded)
}

func TestToKafkaMessage_Unmarshalable(t *testing.T) {
	message := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := message.ToKafkaMessage("booking.created")
	assert.Error(t, err)
}

func TestNew_DisabledDropsMessages(t *testing.T) {
	client := kafka.New(&config.Config{})

	assert.NoError(t, client.SendMessages(context.Background(), "booking.created", kafka.Message{Key: "k", Value: "v"}))
	assert.NoError(t, client.Close())
}
