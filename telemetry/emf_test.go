package telemetry

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMFEmitter_Emit(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewEMFEmitterTo(&buf, func() time.Time { return time.UnixMilli(1700000000000) })

	err := emitter.Emit("Custom/FinOps",
		map[string]string{"FunctionName": "ManageEIPs"},
		map[string]int64{"EIPsScanned": 5, "EIPsReleased": 1},
	)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	// Dimension and metric values flattened at the top level.
	assert.Equal(t, "ManageEIPs", record["FunctionName"])
	assert.Equal(t, float64(5), record["EIPsScanned"])
	assert.Equal(t, float64(1), record["EIPsReleased"])

	// EMF envelope.
	meta, ok := record["_aws"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1700000000000), meta["Timestamp"])

	directives, ok := meta["CloudWatchMetrics"].([]any)
	require.True(t, ok)
	require.Len(t, directives, 1)

	directive := directives[0].(map[string]any)
	assert.Equal(t, "Custom/FinOps", directive["Namespace"])
	assert.Equal(t, []any{[]any{"FunctionName"}}, directive["Dimensions"])

	defs := directive["Metrics"].([]any)
	require.Len(t, defs, 2)
	names := make(map[string]string, len(defs))
	for _, d := range defs {
		def := d.(map[string]any)
		names[def["Name"].(string)] = def["Unit"].(string)
	}
	assert.Equal(t, map[string]string{"EIPsScanned": "Count", "EIPsReleased": "Count"}, names)
}

func TestEMFEmitter_OneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewEMFEmitterTo(&buf, time.Now)

	require.NoError(t, emitter.Emit("Custom/FinOps", map[string]string{"FunctionName": "a"}, map[string]int64{"EIPsScanned": 0}))
	require.NoError(t, emitter.Emit("Custom/FinOps", map[string]string{"FunctionName": "b"}, map[string]int64{"EIPsScanned": 1}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Len(t, lines, 2)
	for _, line := range lines {
		var record map[string]any
		assert.NoError(t, json.Unmarshal(line, &record))
	}
}
