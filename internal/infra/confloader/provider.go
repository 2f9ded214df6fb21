package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// ErrReadBytesNotSupported is returned when ReadBytes is called on a map provider.
var ErrReadBytesNotSupported = errors.New("confloader: ReadBytes not supported by map provider, use Read() instead")

// mapProvider is a simple koanf provider that loads configuration from a map.
// Keys may be dotted ("runtime.frequency_hz"); they are unflattened so the
// values land in the same tree as file and env values.
type mapProvider map[string]any

// ReadBytes returns an error as map provider doesn't support byte serialization.
// Use Read() instead.
func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns the configuration map.
func (m mapProvider) Read() (map[string]any, error) {
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return maps.Unflatten(cp, "."), nil
}
