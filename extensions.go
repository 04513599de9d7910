package arazzo

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// ExtensionPrefix marks vendor-extension keys. Keys carrying the prefix
// are preserved opaquely through the model; any other key Arazzo does
// not define is ignored on read and absent on write.
const ExtensionPrefix = "x-"

// Extensions is the vendor-extension side table attached to an entity.
// Keys keep their full prefixed form; values are normalized tree
// fragments and round-trip unchanged through emission.
type Extensions map[string]any

// IsExtensionKey reports whether a mapping key follows the
// vendor-extension convention.
func IsExtensionKey(key string) bool {
	return strings.HasPrefix(key, ExtensionPrefix)
}

// Decode converts the named extension fragment into target, mapping by
// json tag with weak typing and string→duration/time coercion.
func (e Extensions) Decode(key string, target any) error {
	raw, ok := e[key]
	if !ok {
		return fmt.Errorf("extension %q not present", key)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "json",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode extension %q: %w", key, err)
	}

	return nil
}

// collectExtensions gathers every extension-prefixed entry of a mapping
// that is not one of the fixed document keys already consumed by the
// owning builder. Returns nil when the mapping carries none.
func collectExtensions(n node, consumed ...string) Extensions {
	skip := make(map[string]struct{}, len(consumed))
	for _, k := range consumed {
		skip[k] = struct{}{}
	}

	var ext Extensions
	for _, k := range n.Keys() {
		if _, ok := skip[k]; ok {
			continue
		}
		if !IsExtensionKey(k) {
			continue
		}
		child, _ := n.Get(k)
		if ext == nil {
			ext = Extensions{}
		}
		ext[k] = child.Interface()
	}
	return ext
}
