package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/normal"
)

func normalize(cfg *NormalizeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Normalize.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: normalize takes at most one file", cli.ErrUsage)
	}
	typ, err := cfg.loadType()
	if err != nil {
		return err
	}
	arg := inputs(args)[0]
	data, c, err := cfg.readDoc(cc, arg)
	if err != nil {
		return err
	}
	m := cfg.mapper()
	node, err := m.DenormalizeNew(data, typ, normal.WithFormat(c.Format()))
	if err != nil {
		return fmt.Errorf("error reading %s as %s: %w", arg, typ.Name(), err)
	}
	return cfg.writeDoc(cc, m.Normalize(node, normal.WithFormat(cfg.outFormat().String())))
}

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: merge requires a base document", cli.ErrUsage)
	}
	typ, err := cfg.loadType()
	if err != nil {
		return err
	}
	m := cfg.mapper()
	node := typ.New()
	for _, arg := range args {
		data, c, err := cfg.readDoc(cc, arg)
		if err != nil {
			return err
		}
		node, err = m.Denormalize(data, node, normal.WithFormat(c.Format()))
		if err != nil {
			return fmt.Errorf("error merging %s: %w", arg, err)
		}
		theLog.Debug("merged", "file", arg, "type", typ.Name())
	}
	return cfg.writeDoc(cc, m.Normalize(node, normal.WithFormat(cfg.outFormat().String())))
}
