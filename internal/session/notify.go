package session

import "time"

// DefaultNotifyDelay is how long a notification stays visible.
const DefaultNotifyDelay = time.Second

// Notification is a transient acknowledgment shown to the user.
type Notification struct {
	Text      string    `json:"text"`
	Failed    bool      `json:"failed"`
	PostedAt  time.Time `json:"posted_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Notifier holds notifications until they expire.
type Notifier struct {
	delay  time.Duration
	active []Notification
}

// NewNotifier returns a Notifier whose notifications last delay.
// A non-positive delay selects DefaultNotifyDelay.
func NewNotifier(delay time.Duration) *Notifier {
	if delay <= 0 {
		delay = DefaultNotifyDelay
	}
	return &Notifier{delay: delay}
}

// Post adds a notification that expires delay after now.
func (n *Notifier) Post(text string, failed bool, now time.Time) Notification {
	note := Notification{
		Text:      text,
		Failed:    failed,
		PostedAt:  now,
		ExpiresAt: now.Add(n.delay),
	}
	n.active = append(n.active, note)
	return note
}

// Active drops expired notifications and returns the rest, oldest first.
func (n *Notifier) Active(now time.Time) []Notification {
	kept := n.active[:0]
	for _, note := range n.active {
		if now.Before(note.ExpiresAt) {
			kept = append(kept, note)
		}
	}
	n.active = kept
	return append([]Notification(nil), kept...)
}

// Clear dismisses every notification.
func (n *Notifier) Clear() {
	n.active = nil
}
