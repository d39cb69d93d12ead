package notice

import "time"

type Kind string

const (
	KindAdded    Kind = "added"
	KindUpdated  Kind = "updated"
	KindCheckout Kind = "checkout"
	KindWelcome  Kind = "welcome"
)

// Notice is a success message shown to the shopper and dismissed after Timer.
type Notice struct {
	Kind  Kind
	Title string
	Text  string
	Timer time.Duration
}
