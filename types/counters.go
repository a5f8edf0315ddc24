package types

import "fmt"

// RunCounters accumulates per-run dispositions. Created at run start, owned
// exclusively by the reconciler, emitted once at run end. Never persisted.
type RunCounters struct {
	Scanned           int64 `json:"scanned"`
	SkippedNotManaged int64 `json:"skipped_not_managed"`
	SkippedProtected  int64 `json:"skipped_protected"`
	Associated        int64 `json:"associated"`
	WouldRelease      int64 `json:"would_release"`
	Released          int64 `json:"released"`
	PerResourceErrors int64 `json:"per_resource_errors"`
}

// Record increments the bucket matching a disposition.
func (c *RunCounters) Record(d Disposition) error {
	switch d {
	case SkippedNotManaged:
		c.SkippedNotManaged++
	case SkippedProtected:
		c.SkippedProtected++
	case SkippedAssociated:
		c.Associated++
	case WouldRelease:
		c.WouldRelease++
	case Released:
		c.Released++
	default:
		return fmt.Errorf("unknown disposition: %s", d)
	}
	return nil
}

// Consistent reports whether every scanned address landed in exactly one
// bucket. Holds for any run that did not abort on a fatal error.
func (c RunCounters) Consistent() bool {
	return c.Scanned == c.SkippedNotManaged+c.SkippedProtected+c.Associated+
		c.WouldRelease+c.Released+c.PerResourceErrors
}

// ToMetrics maps counters to CloudWatch metric names, all unit Count.
func (c RunCounters) ToMetrics() map[string]int64 {
	return map[string]int64{
		"EIPsScanned":           c.Scanned,
		"EIPsSkippedNotManaged": c.SkippedNotManaged,
		"EIPsSkippedProtected":  c.SkippedProtected,
		"EIPsAssociated":        c.Associated,
		"EIPsWouldRelease":      c.WouldRelease,
		"EIPsReleased":          c.Released,
		"EIPsPerEipErrors":      c.PerResourceErrors,
	}
}
