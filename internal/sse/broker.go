package sse

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	redisclient "github.com/soycar/hotel-portal/internal/redis"
)

const (
	HeartbeatInterval = 30 * time.Second

	EventConnected            = "connected"
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type Client struct {
	HotelID int64
	Events  chan Event
	Done    chan struct{}
}

// Broker fans booking events out to the dashboards of the owning hotel.
// Events travel through redis pub/sub so every server instance sees them.
// Without a redis client the broker delivers to local subscribers only.
type Broker struct {
	redis   *redisclient.Client
	clients map[int64]map[*Client]bool // hotelID -> set of clients
	cancels map[int64]context.CancelFunc
	mu      sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewBroker(redisClient *redisclient.Client) *Broker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Broker{
		redis:   redisClient,
		clients: make(map[int64]map[*Client]bool),
		cancels: make(map[int64]context.CancelFunc),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (b *Broker) Subscribe(hotelID int64) *Client {
	client := &Client{
		HotelID: hotelID,
		Events:  make(chan Event, 100),
		Done:    make(chan struct{}),
	}

	b.mu.Lock()
	if b.clients[hotelID] == nil {
		b.clients[hotelID] = make(map[*Client]bool)
		if b.redis != nil {
			subCtx, cancel := context.WithCancel(b.ctx)
			b.cancels[hotelID] = cancel
			go b.subscribeToRedis(subCtx, hotelID)
		}
	}
	b.clients[hotelID][client] = true
	clientCount := len(b.clients[hotelID])
	b.mu.Unlock()

	log.Info().
		Int64("hotelId", hotelID).
		Int("clientCount", clientCount).
		Msg("sse client subscribed")

	return client
}

func (b *Broker) Unsubscribe(client *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()

	clients, ok := b.clients[client.HotelID]
	if !ok || !clients[client] {
		return
	}

	delete(clients, client)
	close(client.Done)

	if len(clients) == 0 {
		delete(b.clients, client.HotelID)
		if cancel, ok := b.cancels[client.HotelID]; ok {
			cancel()
			delete(b.cancels, client.HotelID)
		}
	}

	log.Info().
		Int64("hotelId", client.HotelID).
		Int("clientCount", len(clients)).
		Msg("sse client unsubscribed")
}

// Publish sends an event to every dashboard of the hotel.
func (b *Broker) Publish(ctx context.Context, hotelID int64, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := Event{Type: eventType, Data: data}

	if b.redis == nil {
		b.broadcast(hotelID, event)
		return nil
	}

	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.redis.Publish(ctx, redisclient.BookingChannel(hotelID), msg).Err()
}

func (b *Broker) subscribeToRedis(ctx context.Context, hotelID int64) {
	channel := redisclient.BookingChannel(hotelID)
	pubsub := b.redis.Subscribe(ctx, channel)
	defer pubsub.Close()

	log.Debug().
		Int64("hotelId", hotelID).
		Str("channel", channel).
		Msg("redis pubsub subscribed")

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Error().Err(err).Msg("failed to unmarshal event")
				continue
			}

			b.broadcast(hotelID, event)
		}
	}
}

func (b *Broker) broadcast(hotelID int64, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for client := range b.clients[hotelID] {
		select {
		case client.Events <- event:
		default:
			log.Warn().
				Int64("hotelId", hotelID).
				Msg("client event buffer full, dropping event")
		}
	}
}

func (b *Broker) Close() {
	b.cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, clients := range b.clients {
		for client := range clients {
			close(client.Done)
		}
	}
	b.clients = make(map[int64]map[*Client]bool)
	b.cancels = make(map[int64]context.CancelFunc)
}

func (b *Broker) ClientCount(hotelID int64) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients[hotelID])
}

func (b *Broker) TotalClients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := 0
	for _, clients := range b.clients {
		total += len(clients)
	}
	return total
}
