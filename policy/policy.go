// Package policy classifies discovered Elastic IPs against the tag-based
// allow-list and protection rules. Evaluation is pure: no I/O, no failure.
package policy

import "github.com/finopslab/eipreaper/types"

// Policy holds the tag pairs and mode that scope automated release.
type Policy struct {
	ManagedTagKey   string `json:"managed_tag_key"`
	ManagedTagValue string `json:"managed_tag_value"`
	ProtectTagKey   string `json:"protect_tag_key"`
	ProtectTagValue string `json:"protect_tag_value"`
	DryRun          bool   `json:"dry_run"`
}

// Evaluate maps one address to its disposition. Rules are ordered, first
// match wins:
//
//  1. allow-list: tag at ManagedTagKey must equal ManagedTagValue; absent
//     tags are simply not managed
//  2. protection: checked only after the allow-list passes, and overrides
//     everything else
//  3. association: bound addresses are left alone
//  4. release candidate: WouldRelease under dry-run, Released otherwise
//
// The Released disposition here is the intended action; the caller performs
// the side effect and keeps Released only when it succeeds.
func Evaluate(eip types.ElasticIP, p Policy) types.Disposition {
	if eip.Tag(p.ManagedTagKey) != p.ManagedTagValue {
		return types.SkippedNotManaged
	}
	if eip.Tag(p.ProtectTagKey) == p.ProtectTagValue {
		return types.SkippedProtected
	}
	if eip.IsAssociated() {
		return types.SkippedAssociated
	}
	if p.DryRun {
		return types.WouldRelease
	}
	return types.Released
}
