// Package memory tracks, per construction category, the last component
// chosen under each tech base, so toggling a subsystem between Inner Sphere
// and Clan restores the prior choice instead of discarding it.
package memory

import (
	"context"
	"encoding/json"
	"log"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
)

// Version tags the persisted blob. Any other version resets to defaults;
// incremental migration starts mattering once a second schema exists.
const Version = "1.0.0"

// StorageKey is the fixed key the blob is persisted under.
const StorageKey = "techBaseMemory"

// Entry remembers the last component name per tech base for one category.
// Empty strings mean "nothing remembered yet".
type Entry struct {
	InnerSphere string `json:"innerSphere"`
	Clan        string `json:"clan"`
}

// Get returns the remembered name for a tech base.
func (e Entry) Get(base construct.TechBase) string {
	if base == construct.Clan {
		return e.Clan
	}
	return e.InnerSphere
}

// State maps every construction category to its memory entry. A normalized
// state always has all eight categories present.
type State map[construct.Category]Entry

// Default returns the canonical empty template with every category present.
func Default() State {
	s := make(State, len(construct.Categories))
	for _, cat := range construct.Categories {
		s[cat] = Entry{}
	}
	return s
}

// Normalize repairs a state against the canonical template: missing
// categories are filled in empty, existing values are preserved. Nothing is
// dropped silently.
func Normalize(s State) State {
	out := Default()
	for cat, entry := range s {
		if _, known := out[cat]; known {
			out[cat] = entry
		}
	}
	return out
}

// Get returns the remembered component name for (category, base), or "".
func (s State) Get(cat construct.Category, base construct.TechBase) string {
	return s[cat].Get(base)
}

// With returns a copy of the state with (category, base) set to name. The
// receiver is not modified.
func (s State) With(cat construct.Category, base construct.TechBase, name string) State {
	out := make(State, len(s))
	for c, e := range s {
		out[c] = e
	}
	entry := out[cat]
	if base == construct.Clan {
		entry.Clan = name
	} else {
		entry.InnerSphere = name
	}
	out[cat] = entry
	return Normalize(out)
}

// blob is the persisted wire form.
type blob struct {
	Version    string `json:"version"`
	Categories State  `json:"categories"`
}

// KV is the flat string key-value store the blob is persisted through.
// Implementations must report a missing key as found=false, not an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Load reads the persisted state from the store. Missing, corrupt or
// version-mismatched data resets to defaults; storage trouble is logged and
// never surfaced to the caller.
func Load(ctx context.Context, kv KV, key string) State {
	raw, found, err := kv.Get(ctx, key)
	if err != nil {
		log.Printf("memory: load %q: %v (resetting to defaults)", key, err)
		return Default()
	}
	if !found {
		return Default()
	}

	var b blob
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		log.Printf("memory: corrupt blob under %q: %v (resetting to defaults)", key, err)
		return Default()
	}
	return Migrate(b.Version, b.Categories)
}

// Save persists the state under key with the current version tag.
func Save(ctx context.Context, kv KV, key string, s State) error {
	raw, err := json.Marshal(blob{Version: Version, Categories: Normalize(s)})
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, string(raw))
}

// Migrate brings a persisted state up to the current schema. The one
// supported version normalizes in place; anything else resets to defaults.
func Migrate(version string, s State) State {
	if version != Version {
		log.Printf("memory: unsupported version %q, resetting to defaults", version)
		return Default()
	}
	return Normalize(s)
}
