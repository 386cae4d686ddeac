// Package entitlement decides whether the current form content is covered by
// a previous purchase. The server stores one Record per user; the resolver
// compares it against freshly computed fingerprints.
package entitlement

import "time"

// Record is the per-user entitlement state: the fingerprints last paid for,
// one per fingerprintable product. Empty hash fields mean "never purchased".
// PaidHash is a legacy alias older clients still read and write; it mirrors
// the CV hash.
type Record struct {
	PaidCvHash    string    `json:"paidCvHash"`
	PaidCoverHash string    `json:"paidCoverHash"`
	PaidHash      string    `json:"paidHash"`
	LastProduct   string    `json:"lastProduct,omitempty"`
	PaidAt        time.Time `json:"paidAt"`
}

// Zero reports whether the record carries no purchase at all.
func (r Record) Zero() bool {
	return r.PaidCvHash == "" && r.PaidCoverHash == "" && r.PaidHash == ""
}
