package workflow

import (
	"log"
	"sync"
)

// Notification is one user-facing message.
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Notifications collects the messages of one request so they can be returned
// to the dashboard, and mirrors them to a logger when one is set.
type Notifications struct {
	Logger *log.Logger

	mu       sync.Mutex
	messages []Notification
}

// Success records a success message.
func (n *Notifications) Success(message string) {
	n.add("success", message)
}

// Error records an error message.
func (n *Notifications) Error(message string) {
	n.add("error", message)
}

// List returns the recorded messages in order.
func (n *Notifications) List() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.messages))
	copy(out, n.messages)
	return out
}

func (n *Notifications) add(level, message string) {
	n.mu.Lock()
	n.messages = append(n.messages, Notification{Level: level, Message: message})
	n.mu.Unlock()
	if n.Logger != nil {
		n.Logger.Printf("[%s] %s", level, message)
	}
}
