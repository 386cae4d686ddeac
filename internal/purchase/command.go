// Package purchase normalizes purchase requests and records successful
// payments against the entitlement store and the append-only sales log.
package purchase

import (
	"encoding/json"
	"strings"

	"github.com/dmitrijs2005/cvpro/internal/common"
	"github.com/dmitrijs2005/cvpro/internal/payment"
	"github.com/dmitrijs2005/cvpro/internal/product"
)

// Command is the single internal form every purchase request is reduced to
// before it reaches the recorder, regardless of which wire shape it arrived
// in.
type Command struct {
	Product   product.Product
	CvHash    string
	CoverHash string
	Payment   payment.Meta
}

// wireRequest covers both accepted body shapes of the entitlement write
// endpoint:
//
//	new:    {product, cvHash, coverHash, payment}
//	legacy: {snapshotHash, payment}            — pre-bundle clients
type wireRequest struct {
	Product      string       `json:"product"`
	CvHash       string       `json:"cvHash"`
	CoverHash    string       `json:"coverHash"`
	SnapshotHash string       `json:"snapshotHash"`
	Payment      payment.Meta `json:"payment"`
}

// hashLooksValid applies the same sanity bounds as the original endpoint:
// hex fingerprints are 64 chars, but anything in 16..128 is accepted to stay
// compatible with whatever older clients sent.
func hashLooksValid(h string) bool {
	return len(h) >= 16 && len(h) <= 128
}

// ParseCommand decodes a purchase request body and normalizes it into a
// Command. A legacy body carrying only snapshotHash is treated as a CV
// purchase. Returns common.ErrorMissingHash when no usable hash is present
// and common.ErrorInvalidProduct for an unknown product name.
func ParseCommand(body []byte) (Command, error) {
	var req wireRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return Command{}, common.ErrorValidation
	}

	prod := strings.TrimSpace(req.Product)
	cvHash := strings.TrimSpace(req.CvHash)
	coverHash := strings.TrimSpace(req.CoverHash)
	snapshotHash := strings.TrimSpace(req.SnapshotHash)

	if !hashLooksValid(cvHash) {
		cvHash = ""
	}
	if !hashLooksValid(coverHash) {
		coverHash = ""
	}
	if !hashLooksValid(snapshotHash) {
		snapshotHash = ""
	}

	if cvHash == "" && coverHash == "" && snapshotHash == "" {
		return Command{}, common.ErrorMissingHash
	}

	if prod != "" && !product.Valid(prod) {
		return Command{}, common.ErrorInvalidProduct
	}

	cmd := Command{Payment: req.Payment}

	if snapshotHash != "" && cvHash == "" {
		// Legacy shape: the single hash was always the CV fingerprint.
		cvHash = snapshotHash
	}
	cmd.CvHash = cvHash
	cmd.CoverHash = coverHash

	switch {
	case prod != "":
		cmd.Product = product.Product(prod)
	case cvHash != "" && coverHash != "":
		cmd.Product = product.Bundle
	case coverHash != "":
		cmd.Product = product.Cover
	default:
		cmd.Product = product.CV
	}

	return cmd, nil
}
