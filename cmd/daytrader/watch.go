package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/internal/watchlist"
	"github.com/urfave/cli/v3"
)

func watchAddAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("at least one symbol is required")
	}

	store := watchlist.NewFileStore(cmd.String("file"))

	symbols, err := store.Load()
	if err != nil {
		return err
	}

	return store.Save(append(symbols, cmd.Args().Slice()...))
}

func watchRemoveAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("at least one symbol is required")
	}

	store := watchlist.NewFileStore(cmd.String("file"))

	symbols, err := store.Load()
	if err != nil {
		return err
	}

	drop := make([]string, 0, cmd.Args().Len())
	for _, symbol := range cmd.Args().Slice() {
		drop = append(drop, types.NormalizeSymbol(symbol))
	}

	kept := slices.DeleteFunc(symbols, func(symbol string) bool {
		return slices.Contains(drop, symbol)
	})

	return store.Save(kept)
}

func watchListAction(_ context.Context, cmd *cli.Command) error {
	symbols, err := watchlist.NewFileStore(cmd.String("file")).Load()
	if err != nil {
		return err
	}

	for _, symbol := range symbols {
		if _, err := fmt.Fprintln(cmd.Root().Writer, symbol); err != nil {
			return err
		}
	}

	return nil
}
