// Package controller implements the core business logic (service layer)
// for industries, companies and user registration, orchestrating
// repository operations and sending relevant events.
package controller

import (
	"github.com/gartstein/usermanagement/internal/usermanagement/events"
)

// EventProducer publishes domain events without blocking the caller.
type EventProducer interface {
	Produce(event events.Event)
}

// PasswordHasher turns a plaintext password into a one-way hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// produceAsync hands the event to p on its own goroutine.
func produceAsync(p EventProducer, event events.Event) {
	go func() {
		p.Produce(event)
	}()
}
