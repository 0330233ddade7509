package metrics

import (
	"encoding/json"
	"fmt"
)

// MetricKey identifies a specific metric by type and key
type MetricKey struct {
	Type string // "file" | "header" | "final"
	Key  string
}

// String returns a string representation of the MetricKey
func (k MetricKey) String() string {
	return fmt.Sprintf("%s:%s", k.Type, k.Key)
}

// NewKey creates a new MetricKey with the given type and key
func NewKey(typ, key string) MetricKey {
	return MetricKey{Type: typ, Key: key}
}

// MetricItem stores the metrics for a specific item
type MetricItem struct {
	Bytes  int `json:"bytes"`
	Tokens int `json:"tokens"`
	Lines  int `json:"lines"`
}

// Add adds the given metrics to this item
func (m *MetricItem) Add(bytes, tokens, lines int) {
	m.Bytes += bytes
	m.Tokens += tokens
	m.Lines += lines
}

// OutputMetrics accumulates per-item metrics during an aggregation pass.
// Counting happens synchronously on Add; the engine model has exactly one
// actor, so there is no locking.
type OutputMetrics struct {
	Items map[MetricKey]MetricItem
	Ctr   Counter // token/line/byte counter
}

// NewOutputMetrics creates an OutputMetrics backed by the given counter.
func NewOutputMetrics(counter Counter) *OutputMetrics {
	return &OutputMetrics{
		Items: make(map[MetricKey]MetricItem),
		Ctr:   counter,
	}
}

// Add counts content and credits it to the (typ, key) bucket.
func (m *OutputMetrics) Add(typ, key string, content []byte) {
	bytes, tokens, lines := m.Ctr.Count(string(content))
	metricKey := MetricKey{Type: typ, Key: key}
	item := m.Items[metricKey]
	item.Add(bytes, tokens, lines)
	m.Items[metricKey] = item
}

// SumBy returns the sum of all metrics for the given type
func (m *OutputMetrics) SumBy(typeName string) MetricItem {
	var sum MetricItem
	for k, v := range m.Items {
		if k.Type == typeName {
			sum.Add(v.Bytes, v.Tokens, v.Lines)
		}
	}
	return sum
}

// MarshalJSON marshals the metrics to JSON with string keys
func (m *OutputMetrics) MarshalJSON() ([]byte, error) {
	result := make(map[string]MetricItem, len(m.Items))
	for k, v := range m.Items {
		result[k.String()] = v
	}
	return json.Marshal(result)
}
