package core

// KeyState tracks which key identifiers are currently held down.
// It is mutated only by key events and read when drawing lane highlights.
type KeyState map[string]bool

// Press marks key as held.
func (k KeyState) Press(key string) {
	k[key] = true
}

// Release marks key as released.
func (k KeyState) Release(key string) {
	delete(k, key)
}

// Pressed reports whether key is held.
func (k KeyState) Pressed(key string) bool {
	return k[key]
}

// Binding maps one key identifier to a lane.
type Binding struct {
	Key  string `yaml:"key"`
	Lane int    `yaml:"lane"`
}

// Bindings is the fixed key-to-lane table of a session.
type Bindings struct {
	byKey  map[string]int
	byLane map[int][]string
}

// NewBindings builds the lookup tables. Later entries for the same key win;
// configuration validation rejects duplicates before this point.
func NewBindings(list []Binding) Bindings {
	b := Bindings{
		byKey:  make(map[string]int, len(list)),
		byLane: make(map[int][]string),
	}
	for _, e := range list {
		b.byKey[e.Key] = e.Lane
		b.byLane[e.Lane] = append(b.byLane[e.Lane], e.Key)
	}
	return b
}

// Lane returns the lane bound to key.
func (b Bindings) Lane(key string) (int, bool) {
	lane, ok := b.byKey[key]
	return lane, ok
}

// Keys returns the keys bound to lane.
func (b Bindings) Keys(lane int) []string {
	return b.byLane[lane]
}

// Key returns the first key bound to lane, used by the autoplayer and for
// lane labels.
func (b Bindings) Key(lane int) (string, bool) {
	keys := b.byLane[lane]
	if len(keys) == 0 {
		return "", false
	}
	return keys[0], true
}
