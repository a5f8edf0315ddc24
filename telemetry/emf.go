package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// EMFEmitter writes CloudWatch Embedded Metric Format records: one JSON
// object per run, shaped so the metrics extractor derives one Count metric
// per counter. This supplements the built-in Lambda metrics, it does not
// replace them.
type EMFEmitter struct {
	out io.Writer
	now func() time.Time
}

// NewEMFEmitter creates an emitter writing to stdout.
func NewEMFEmitter() *EMFEmitter {
	return &EMFEmitter{out: os.Stdout, now: time.Now}
}

// NewEMFEmitterTo creates an emitter with an explicit sink and clock.
// Used by tests.
func NewEMFEmitterTo(w io.Writer, now func() time.Time) *EMFEmitter {
	return &EMFEmitter{out: w, now: now}
}

type emfMetricDef struct {
	Name string `json:"Name"`
	Unit string `json:"Unit"`
}

type emfDirective struct {
	Namespace  string         `json:"Namespace"`
	Dimensions [][]string     `json:"Dimensions"`
	Metrics    []emfMetricDef `json:"Metrics"`
}

type emfMetadata struct {
	Timestamp         int64          `json:"Timestamp"`
	CloudWatchMetrics []emfDirective `json:"CloudWatchMetrics"`
}

// Emit writes one EMF record. Dimension keys form the single dimension set;
// dimension values and metric values are flattened at the top level of the
// object, as the EMF envelope requires.
func (e *EMFEmitter) Emit(namespace string, dimensions map[string]string, metrics map[string]int64) error {
	dimensionKeys := make([]string, 0, len(dimensions))
	for k := range dimensions {
		dimensionKeys = append(dimensionKeys, k)
	}

	defs := make([]emfMetricDef, 0, len(metrics))
	for name := range metrics {
		defs = append(defs, emfMetricDef{Name: name, Unit: "Count"})
	}

	record := make(map[string]any, len(dimensions)+len(metrics)+1)
	record["_aws"] = emfMetadata{
		Timestamp: e.now().UnixMilli(),
		CloudWatchMetrics: []emfDirective{{
			Namespace:  namespace,
			Dimensions: [][]string{dimensionKeys},
			Metrics:    defs,
		}},
	}
	for k, v := range dimensions {
		record[k] = v
	}
	for k, v := range metrics {
		record[k] = v
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal emf record: %w", err)
	}
	if _, err := fmt.Fprintln(e.out, string(data)); err != nil {
		return fmt.Errorf("write emf record: %w", err)
	}
	return nil
}
