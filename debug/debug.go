// Package debug holds environment driven debug switches.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Normalize   bool
	Denormalize bool
	Codec       bool
}

var d *debug

func init() {
	d = &debug{}
	d.Normalize = boolEnv("NORMAL_DEBUG_NORMALIZE")
	d.Denormalize = boolEnv("NORMAL_DEBUG_DENORMALIZE")
	d.Codec = boolEnv("NORMAL_DEBUG_CODEC")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Normalize() bool {
	return d.Normalize
}
func Denormalize() bool {
	return d.Denormalize
}
func Codec() bool {
	return d.Codec
}

// Set overrides the switches read from the environment. It is meant for
// tests and the CLI.
func Set(normalize, denormalize, codec bool) {
	d.Normalize = normalize
	d.Denormalize = denormalize
	d.Codec = codec
}
