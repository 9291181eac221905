package main

import (
	"github.com/scott-cotton/cli"
	"github.com/signadot/normal/query"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	var q *query.Query
	if cfg.Where != "" {
		q, err = query.Compile(cfg.Where)
		if err != nil {
			return err
		}
	}
	for _, arg := range inputs(args) {
		node, _, err := cfg.readDoc(cc, arg)
		if err != nil {
			return err
		}
		if q != nil {
			node, err = q.Filter(node)
			if err != nil {
				return err
			}
		}
		if err := cfg.writeDoc(cc, node); err != nil {
			return err
		}
	}
	return nil
}
