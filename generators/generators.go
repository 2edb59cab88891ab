// Package generators holds the pluggable display-data collaborators: functions
// that turn a challenge or pubkey into a QR image, an avatar and a display
// name. They carry no protocol semantics; any failure degrades gracefully
// into absent display data.
package generators

// QRFunc renders data (typically a "lightning:LNURL..." URI) as a PNG image.
type QRFunc func(data string) ([]byte, error)

// AvatarFunc produces a deterministic avatar image for a seed (the pubkey).
type AvatarFunc func(seed string) ([]byte, error)

// NameFunc produces a deterministic display name for a seed (the pubkey).
type NameFunc func(seed string) (string, error)

// Generators bundles the display collaborators handed to the protocol engine.
// Any of the fields may be nil, in which case the corresponding display data
// is simply absent.
type Generators struct {
	QR     QRFunc
	Avatar AvatarFunc
	Name   NameFunc
}

// Default returns the built-in generator set.
func Default() Generators {
	return Generators{
		QR:     QR,
		Avatar: Avatar,
		Name:   Name,
	}
}
