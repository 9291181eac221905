package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/normal"
	"github.com/signadot/normal/codec"
	"github.com/signadot/normal/libdiff"
	"github.com/signadot/normal/schema"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='output with color'"`
	Compact bool `cli:"name=compact desc='compact json output'"`
	Strict  bool `cli:"name=strict desc='fail on shape mismatches instead of overwriting'"`
	V       bool `cli:"name=v desc='log debug messages'"`

	InFormat, OutFormat *codec.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fp **codec.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := codec.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

// inCodec picks the codec for reading path: -I, else the file extension,
// else json.
func (cfg *MainConfig) inCodec(path string) (codec.Codec, error) {
	f := codec.JSONFormat
	if ext, ok := codec.FormatOf(path); ok {
		f = ext
	}
	if cfg.InFormat != nil {
		f = *cfg.InFormat
	}
	return codec.For(f)
}

func (cfg *MainConfig) outFormat() codec.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if ext, ok := codec.FormatOf(cfg.Out); ok {
		return ext
	}
	return codec.JSONFormat
}

func (cfg *MainConfig) outCodec(w io.Writer) (codec.Codec, error) {
	f := cfg.outFormat()
	if f != codec.JSONFormat {
		return codec.For(f)
	}
	var opts []codec.JSONOption
	if !cfg.Compact {
		opts = append(opts, codec.JSONIndent("  "))
	}
	if cfg.colors(w) {
		opts = append(opts, codec.JSONColors(codec.NewColors()))
	}
	return codec.JSON(opts...), nil
}

// colors reports whether to color output to w: -color when given, else
// whether w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) diffColors(w io.Writer) *libdiff.Colors {
	if cfg.colors(w) {
		return libdiff.NewColors()
	}
	return nil
}

func (cfg *MainConfig) mapper() *normal.Mapper {
	opts := []normal.Option{normal.WithLogger(theLog)}
	if cfg.Strict {
		opts = append(opts, normal.Strict())
	}
	return normal.NewMapper(opts...)
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}

// TypeConfig selects a type from a definitions file.
type TypeConfig struct {
	Defs string `cli:"name=d aliases=defs desc='type definitions file (yaml)'"`
	Type string `cli:"name=t aliases=type desc='name of the type to use'"`
}

func (cfg *TypeConfig) loadType() (*schema.Type, error) {
	if cfg.Defs == "" || cfg.Type == "" {
		return nil, fmt.Errorf("%w: -d and -t are required", cli.ErrUsage)
	}
	data, err := os.ReadFile(cfg.Defs)
	if err != nil {
		return nil, err
	}
	reg := schema.NewRegistry()
	if _, err := reg.LoadDefinitions(data); err != nil {
		return nil, fmt.Errorf("error loading %s: %w", cfg.Defs, err)
	}
	return reg.Get(cfg.Type)
}

type NormalizeConfig struct {
	*MainConfig
	TypeConfig

	Normalize *cli.Command
}

type MergeConfig struct {
	*MainConfig
	TypeConfig

	Merge *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Patch   bool `cli:"name=patch desc='output a merge patch instead of a line diff'"`
	Context int  `cli:"name=c desc='lines of context, -1 for all'"`

	Diff *cli.Command
}

type ViewConfig struct {
	*MainConfig
	Where string `cli:"name=where desc='keep collection entries matching an expression'"`

	View *cli.Command
}
