package normal

import (
	"log/slog"

	"github.com/signadot/normal/ir"
)

// Mapper normalizes and denormalizes typed nodes. A Mapper holds no state
// besides its configuration and may be shared.
type Mapper struct {
	policy MismatchPolicy
	logger *slog.Logger
}

var defaultMapper = NewMapper()

func NewMapper(opts ...Option) *Mapper {
	c := newConfig(opts...)
	return &Mapper{
		policy: c.policy,
		logger: c.logger,
	}
}

// DefaultMapper returns the mapper used by the package level functions. It
// overwrites mismatched data and does not log.
func DefaultMapper() *Mapper {
	return defaultMapper
}

func (m *Mapper) Policy() MismatchPolicy {
	return m.policy
}

// Normalize is DefaultMapper().Normalize.
func Normalize(node Typed, ctx Context) *ir.Node {
	return defaultMapper.Normalize(node, ctx)
}

// Denormalize is DefaultMapper().Denormalize.
func Denormalize(data *ir.Node, node Typed, ctx Context) (Typed, error) {
	return defaultMapper.Denormalize(data, node, ctx)
}

// DenormalizeNew is DefaultMapper().DenormalizeNew.
func DenormalizeNew(data *ir.Node, t ItemType, ctx Context) (Typed, error) {
	return defaultMapper.DenormalizeNew(data, t, ctx)
}
