package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/currency"
)

func (cli *commandLine) currenciesCmd(args []string) error {
	fs := cli.newFlagSet("currencies")
	ordering := fs.String("ordering", "id", "The fields to sort by, e.g. code,-name.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if err := cli.promptToken(); err != nil {
		return errors.Wrap(err, "reading API token")
	}
	repo, err := cli.currencyRepo(cli.conf)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cli.conf.Backend.Timeout)
	defer cancel()
	currencies, err := currency.NewService(repo, cli.conf).Query(ctx, core.ParseOrdering(*ordering)...)
	if err != nil {
		cli.logger.Error("admin.currencies", err)
		return errors.Wrap(err, "querying currencies")
	}

	n := currency.NewNormalizer(cli.conf.Currency.BaseCode, cli.conf.Currency.LegacyBaseNames)
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCODE\tNAME\tSYMBOL\tBASE")
	for _, c := range currencies {
		base := ""
		if n.IsBase(c) {
			base = "*"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Code, c.Name, c.Symbol, base)
	}
	return w.Flush()
}
