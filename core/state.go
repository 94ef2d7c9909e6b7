package core

// State is the per-session key-value bag used to pass outputs between
// pipeline steps. Keys are produced by one agent and consumed by the next
// within a single conversation turn, so access is sequential and the map is
// deliberately unsynchronized.
type State map[string]any

func NewState() State {
	return make(State)
}

func (s State) Set(key string, value any) {
	s[key] = value
}

func (s State) Get(key string) (any, bool) {
	v, ok := s[key]
	return v, ok
}

// GetString returns the value for key as a string, or "" when the key is
// absent or holds a non-string value.
func (s State) GetString(key string) string {
	if v, ok := s[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// GetBool returns the value for key as a bool, or fallback when the key is
// absent or holds a non-bool value.
func (s State) GetBool(key string, fallback bool) bool {
	if v, ok := s[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

func (s State) Has(key string) bool {
	_, ok := s[key]
	return ok
}
