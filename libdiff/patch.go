package libdiff

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/normal/codec"
	"github.com/signadot/normal/ir"
)

// MergePatch computes the RFC 7386 merge patch taking from to to. Removed
// fields are set to null in the patch.
func MergePatch(from, to *ir.Node) (*ir.Node, error) {
	c := codec.JSON()
	fromJSON, err := c.Encode(from)
	if err != nil {
		return nil, fmt.Errorf("error encoding from: %w", err)
	}
	toJSON, err := c.Encode(to)
	if err != nil {
		return nil, fmt.Errorf("error encoding to: %w", err)
	}
	patch, err := jsonpatch.CreateMergePatch(fromJSON, toJSON)
	if err != nil {
		return nil, fmt.Errorf("error creating merge patch: %w", err)
	}
	return c.Decode(patch)
}

// ApplyMergePatch applies an RFC 7386 merge patch to doc. doc is not
// modified.
func ApplyMergePatch(doc, patch *ir.Node) (*ir.Node, error) {
	c := codec.JSON()
	docJSON, err := c.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("error encoding doc: %w", err)
	}
	patchJSON, err := c.Encode(patch)
	if err != nil {
		return nil, fmt.Errorf("error encoding patch: %w", err)
	}
	res, err := jsonpatch.MergePatch(docJSON, patchJSON)
	if err != nil {
		return nil, fmt.Errorf("error applying merge patch: %w", err)
	}
	return c.Decode(res)
}
