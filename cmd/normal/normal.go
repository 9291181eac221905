package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/normal/codec"
	"github.com/signadot/normal/ir"
)

func normalMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.V {
		logLevel.Set(slog.LevelDebug)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readDoc reads and decodes the document at arg, stdin for "-".
func (cfg *MainConfig) readDoc(cc *cli.Context, arg string) (*ir.Node, codec.Codec, error) {
	var r io.Reader
	if arg == "-" {
		r = cc.In
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading %s: %w", arg, err)
	}
	c, err := cfg.inCodec(arg)
	if err != nil {
		return nil, nil, err
	}
	node, err := c.Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	theLog.Debug("read", "file", arg, "format", c.Format(), "bytes", len(data))
	return node, c, nil
}

func (cfg *MainConfig) writeDoc(cc *cli.Context, node *ir.Node) error {
	c, err := cfg.outCodec(cc.Out)
	if err != nil {
		return err
	}
	data, err := c.Encode(node)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err = cc.Out.Write(data)
	return err
}

func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
