// Package libdiff compares plain data trees.
//
// Lines produces a line diff of the indented JSON renderings of two trees,
// MergePatch and ApplyMergePatch compute and apply RFC 7386 merge patches.
// A merge patch is itself a plain tree, so it can be denormalized into a
// typed node to merge the change in place.
package libdiff
