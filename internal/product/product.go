// Package product defines the purchasable products and their pricing.
package product

// Product identifies what a download attempt is for. A bundle combines the
// CV and the cover letter; it is never fingerprinted on its own.
type Product string

const (
	CV     Product = "cv"
	Cover  Product = "cover"
	Bundle Product = "bundle"
)

// Parse maps untrusted input to a Product, falling back to CV the same way
// the web client does for an unchecked selector.
func Parse(s string) Product {
	switch Product(s) {
	case CV, Cover, Bundle:
		return Product(s)
	default:
		return CV
	}
}

// Valid reports whether s names a known product.
func Valid(s string) bool {
	switch Product(s) {
	case CV, Cover, Bundle:
		return true
	}
	return false
}

// IncludesCV reports whether the delivered artifact set contains the CV PDF.
func (p Product) IncludesCV() bool { return p == CV || p == Bundle }

// IncludesCover reports whether the delivered artifact set contains the
// cover-letter document.
func (p Product) IncludesCover() bool { return p == Cover || p == Bundle }

// ReferencePrefix is the prefix of generated payment references, e.g.
// "BUNDLE-1f0c...".
func (p Product) ReferencePrefix() string {
	switch p {
	case Cover:
		return "COVER"
	case Bundle:
		return "BUNDLE"
	default:
		return "CV"
	}
}

// Label is the human-readable product name used in CLI output.
func (p Product) Label() string {
	switch p {
	case Cover:
		return "Cover Letter"
	case Bundle:
		return "Bundle"
	default:
		return "CV"
	}
}

// PriceTable holds the full price of each product. There is no partial
// credit: a bundle is always charged at the bundle price even when one half
// was previously purchased on its own.
type PriceTable struct {
	CV       int64
	Cover    int64
	Bundle   int64
	Currency string
}

// DefaultPrices mirrors the launch pricing (ZMW).
func DefaultPrices() PriceTable {
	return PriceTable{CV: 50, Cover: 30, Bundle: 70, Currency: "ZMW"}
}

// Price returns the full price of p.
func (t PriceTable) Price(p Product) int64 {
	switch p {
	case Cover:
		return t.Cover
	case Bundle:
		return t.Bundle
	default:
		return t.CV
	}
}
