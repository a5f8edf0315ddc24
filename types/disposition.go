package types

// Disposition is the single classified outcome assigned to an address for
// one run. Exactly one per address; terminal, never revisited.
type Disposition string

const (
	// SkippedNotManaged - the allow-list tag is absent or mismatched.
	SkippedNotManaged Disposition = "skipped_not_managed"
	// SkippedProtected - the protection tag matched; never acted on.
	SkippedProtected Disposition = "skipped_protected"
	// SkippedAssociated - bound to an instance or network interface.
	SkippedAssociated Disposition = "skipped_associated"
	// WouldRelease - release candidate under dry-run; no action taken.
	WouldRelease Disposition = "would_release"
	// Released - release candidate; the caller upgrades to this only after
	// the release call succeeds under live mode.
	Released Disposition = "released"
)
