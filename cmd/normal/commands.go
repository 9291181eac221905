package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y, cbor/c",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y, cbor/c",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "normal").
		WithSynopsis("normal [opts] command [opts]").
		WithDescription("normal converts, normalizes, merges and compares data documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return normalMain(cfg, cc, args)
		}).
		WithSubs(
			ConvertCommand(cfg),
			NormalizeCommand(cfg),
			MergeCommand(cfg),
			DiffCommand(cfg),
			ViewCommand(cfg))
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Convert, "convert").
		WithAliases("c", "conv").
		WithSynopsis("convert [file]").
		WithDescription("convert a document between json, yaml and cbor").
		WithRun(func(cc *cli.Context, args []string) error {
			return convert(cfg, cc, args)
		})
}

func NormalizeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NormalizeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(&cfg.TypeConfig)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Normalize, "normalize").
		WithAliases("n", "norm").
		WithSynopsis("normalize -d defs.yaml -t type [file]").
		WithDescription(normalizeDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return normalize(cfg, cc, args)
		})
}

const normalizeDescription = `normalize reads a document into a fresh instance of a type and
writes it back out.

Types are defined in a yaml file:

  types:
  - name: Order
    kind: entity
    fields:
    - name: id
    - name: lines
      type: Lines
  - name: Lines
    kind: collection
    item: Line
  - name: Line
    kind: entity
    closed: true
    fields:
    - name: sku
    - name: qty

Properties of entities with falsy values (null, false, 0, "", empty
collections) are dropped from the output. Collection items are never dropped.`

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(&cfg.TypeConfig)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Merge, "merge").
		WithAliases("m").
		WithSynopsis("merge -d defs.yaml -t type base [patches]").
		WithDescription("merge documents into one instance of a type, in order").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return merge(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Context: 3}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff [-patch] a b").
		WithDescription("diff documents, exiting 1 when they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [-where expr] [files]").
		WithDescription("view documents, in color on terminals").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}
