package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Domenick1991/routesuggest/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReader struct {
	mock.Mock
}

func (m *MockReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	args := m.Called(ctx)
	return args.Get(0).(kafka.Message), args.Error(1)
}

func (m *MockReader) Close() error {
	return m.Called().Error(0)
}

func searchMessage(t *testing.T, event domain.SearchEvent) kafka.Message {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Value: data}
}

func TestConsumer_ConsumeSearchEvents(t *testing.T) {
	reader := &MockReader{}
	consumer := &Consumer{reader: reader}
	ctx := context.Background()

	good := domain.SearchEvent{ID: "1", Type: domain.SearchEventRouteSearched, Source: "DEL", Destination: "BOM", Found: true}
	reader.On("ReadMessage", ctx).Return(kafka.Message{Value: []byte("not json")}, nil).Once()
	reader.On("ReadMessage", ctx).Return(searchMessage(t, domain.SearchEvent{ID: "2", Type: "booking_created"}), nil).Once()
	reader.On("ReadMessage", ctx).Return(searchMessage(t, good), nil).Once()
	reader.On("ReadMessage", ctx).Return(kafka.Message{}, context.Canceled).Once()

	var handled []domain.SearchEvent
	err := consumer.ConsumeSearchEvents(ctx, func(_ context.Context, event domain.SearchEvent) error {
		handled = append(handled, event)
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, handled, 1)
	assert.Equal(t, "1", handled[0].ID)
	reader.AssertExpectations(t)
}

func TestConsumer_ConsumeSearchEvents_HandlerError(t *testing.T) {
	reader := &MockReader{}
	consumer := &Consumer{reader: reader}
	ctx := context.Background()

	reader.On("ReadMessage", ctx).Return(searchMessage(t, domain.SearchEvent{ID: "1", Type: domain.SearchEventRouteSearched, Source: "DEL", Destination: "BOM"}), nil).Once()

	handlerErr := errors.New("redis unavailable")
	err := consumer.ConsumeSearchEvents(ctx, func(context.Context, domain.SearchEvent) error {
		return handlerErr
	})

	assert.ErrorIs(t, err, handlerErr)
	reader.AssertNumberOfCalls(t, "ReadMessage", 1)
}

func TestConsumer_Close(t *testing.T) {
	reader := &MockReader{}
	reader.On("Close").Return(nil).Once()

	assert.NoError(t, (&Consumer{reader: reader}).Close())
	assert.NoError(t, (*Consumer)(nil).Close())
}
