package routing

import (
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Param is a single parameter name/value pair.
type Param struct {
	Key   string
	Value any
}

// Params is an insertion-ordered set of remote command parameters. Values
// are string, bool, int or []string.
type Params struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{m: orderedmap.New[string, any]()}
}

// Set stores value under key. An existing key keeps its position.
func (p *Params) Set(key string, value any) {
	if list, ok := value.([]string); ok {
		value = append([]string(nil), list...)
	}
	p.m.Set(key, value)
}

func (p *Params) Get(key string) (any, bool) {
	return p.m.Get(key)
}

func (p *Params) Has(key string) bool {
	_, ok := p.m.Get(key)
	return ok
}

func (p *Params) Len() int {
	return p.m.Len()
}

// Keys returns the parameter names in insertion order.
func (p *Params) Keys() []string {
	keys := make([]string, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Pairs returns the parameters in insertion order.
func (p *Params) Pairs() []Param {
	pairs := make([]Param, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		pairs = append(pairs, Param{Key: pair.Key, Value: pair.Value})
	}
	return pairs
}

// Map returns an unordered copy of the parameters.
func (p *Params) Map() map[string]any {
	out := make(map[string]any, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// Equal reports whether both sets hold the same keys, in the same order,
// with equal values.
func (p *Params) Equal(other *Params) bool {
	if p == nil || other == nil {
		return p == other
	}
	return reflect.DeepEqual(p.Pairs(), other.Pairs())
}

// MarshalJSON encodes the parameters as a JSON object in insertion order.
func (p *Params) MarshalJSON() ([]byte, error) {
	return p.m.MarshalJSON()
}

func (p *Params) setString(key, value string) {
	if value != "" {
		p.Set(key, value)
	}
}

func (p *Params) setBool(key string, value *bool) {
	if value != nil {
		p.Set(key, *value)
	}
}

func (p *Params) setInt(key string, value *int) {
	if value != nil {
		p.Set(key, *value)
	}
}

func (p *Params) setList(key string, value []string) {
	if len(value) > 0 {
		p.Set(key, value)
	}
}
