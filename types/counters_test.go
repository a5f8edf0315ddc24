package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCounters_Record(t *testing.T) {
	var c RunCounters

	require.NoError(t, c.Record(SkippedNotManaged))
	require.NoError(t, c.Record(SkippedNotManaged))
	require.NoError(t, c.Record(SkippedProtected))
	require.NoError(t, c.Record(SkippedAssociated))
	require.NoError(t, c.Record(WouldRelease))
	require.NoError(t, c.Record(Released))

	assert.Equal(t, int64(2), c.SkippedNotManaged)
	assert.Equal(t, int64(1), c.SkippedProtected)
	assert.Equal(t, int64(1), c.Associated)
	assert.Equal(t, int64(1), c.WouldRelease)
	assert.Equal(t, int64(1), c.Released)
}

func TestRunCounters_RecordUnknown(t *testing.T) {
	var c RunCounters
	err := c.Record(Disposition("exploded"))
	assert.Error(t, err)
}

func TestRunCounters_Consistent(t *testing.T) {
	c := RunCounters{
		Scanned:           5,
		SkippedNotManaged: 2,
		SkippedProtected:  1,
		Associated:        1,
		Released:          1,
	}
	assert.True(t, c.Consistent())

	c.Scanned = 6
	assert.False(t, c.Consistent())
}

func TestRunCounters_ToMetrics(t *testing.T) {
	c := RunCounters{
		Scanned:           7,
		SkippedNotManaged: 3,
		SkippedProtected:  1,
		Associated:        1,
		WouldRelease:      0,
		Released:          1,
		PerResourceErrors: 1,
	}

	m := c.ToMetrics()
	assert.Len(t, m, 7)
	assert.Equal(t, int64(7), m["EIPsScanned"])
	assert.Equal(t, int64(3), m["EIPsSkippedNotManaged"])
	assert.Equal(t, int64(1), m["EIPsSkippedProtected"])
	assert.Equal(t, int64(1), m["EIPsAssociated"])
	assert.Equal(t, int64(0), m["EIPsWouldRelease"])
	assert.Equal(t, int64(1), m["EIPsReleased"])
	assert.Equal(t, int64(1), m["EIPsPerEipErrors"])
}

func TestErrorClass_Fatal(t *testing.T) {
	assert.True(t, ErrorFatal.Fatal())
	assert.True(t, ErrorUnclassified.Fatal())
	assert.False(t, ErrorRecoverable.Fatal())
}
