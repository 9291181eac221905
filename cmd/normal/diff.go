package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/normal/libdiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 arguments", cli.ErrUsage)
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: at most one argument may be stdin", cli.ErrUsage)
	}
	from, _, err := cfg.readDoc(cc, args[0])
	if err != nil {
		return err
	}
	to, _, err := cfg.readDoc(cc, args[1])
	if err != nil {
		return err
	}
	if cfg.Reverse {
		from, to = to, from
	}
	if cfg.Patch {
		patch, err := libdiff.MergePatch(from, to)
		if err != nil {
			return err
		}
		if patch.Len() == 0 {
			return nil
		}
		if err := cfg.writeDoc(cc, patch); err != nil {
			return err
		}
		return cli.ExitCodeErr(1)
	}
	lines, err := libdiff.Lines(from, to)
	if err != nil {
		return err
	}
	if !libdiff.Changed(lines) {
		return nil
	}
	if err := libdiff.Write(cc.Out, lines, cfg.diffColors(cc.Out), cfg.Context); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
