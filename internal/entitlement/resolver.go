package entitlement

import "github.com/dmitrijs2005/cvpro/internal/product"

// Decision is the outcome of an entitlement check for one product selection.
// Owed lists the fingerprintable components not covered by the stored
// record; it is informational — when the download is not free the user owes
// the full price of the selected product, never a partial credit.
type Decision struct {
	IsFree bool
	Owed   []product.Product
}

// Resolve compares the current fingerprints against the stored record.
//
// A component is satisfied only when a hash was recorded AND it equals the
// current one. Bundle is derived: free iff both components are satisfied on
// their own. rec may be the zero Record (anonymous user or no purchase
// yet) — then nothing is ever free.
//
// Pure function: no storage or network access.
func Resolve(p product.Product, currentCvHash, currentCoverHash string, rec Record) Decision {
	cvOk := rec.PaidCvHash != "" && rec.PaidCvHash == currentCvHash
	coverOk := rec.PaidCoverHash != "" && rec.PaidCoverHash == currentCoverHash

	var d Decision
	switch p {
	case product.CV:
		d.IsFree = cvOk
		if !cvOk {
			d.Owed = append(d.Owed, product.CV)
		}
	case product.Cover:
		d.IsFree = coverOk
		if !coverOk {
			d.Owed = append(d.Owed, product.Cover)
		}
	case product.Bundle:
		d.IsFree = cvOk && coverOk
		if !cvOk {
			d.Owed = append(d.Owed, product.CV)
		}
		if !coverOk {
			d.Owed = append(d.Owed, product.Cover)
		}
	}
	return d
}
