// Package providers defines the cloud collaborator interfaces the
// reconciler depends on. Discovery and release are deliberately thin:
// all decision content lives in policy and reconciler.
package providers

import (
	"context"

	"github.com/finopslab/eipreaper/types"
)

// AddressLister enumerates Elastic IP snapshots. Each run re-queries the
// source; the returned slice is finite and consumed once.
type AddressLister interface {
	ListElasticIPs(ctx context.Context) ([]types.ElasticIP, error)
}

// AddressReleaser performs the destructive release call. One attempt per
// address per run; no retry or backoff here.
type AddressReleaser interface {
	ReleaseElasticIP(ctx context.Context, allocationID string) error
}

// Provider is the full collaborator surface for one cloud account.
type Provider interface {
	AddressLister
	AddressReleaser

	// Classify maps a release-call failure to the closed error taxonomy.
	Classify(err error) types.ErrorClass

	// ErrorCode extracts the provider's machine-readable error code for
	// log fields, or "Unknown" when the error carries none.
	ErrorCode(err error) string

	Name() string
	Region() string
}
