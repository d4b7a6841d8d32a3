package main

import (
	"fmt"
	"strings"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/currency"
)

func (cli *commandLine) convertCmd(args []string) error {
	fs := cli.newFlagSet("convert")
	amount := fs.String("amount", "", "The amount to convert.")
	name := fs.String("currency", "", "The name of the currency of the amount, e.g. Bolívar.")
	rate := fs.String("rate", "1", "The exchange rate, in units of the currency per dollar.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *amount == "" || strings.TrimSpace(*name) == "" {
		fs.Usage()
		return errHelp
	}

	n := currency.NewNormalizer(cli.conf.Currency.BaseCode, cli.conf.Currency.LegacyBaseNames)
	converted := n.Normalize(core.ParseAmount(*amount), currency.Currency{Name: *name}, core.ParseAmount(*rate))
	_, _ = fmt.Fprintf(cli.out, "%s %s at %s = %s %s\n",
		converted.Amount.String(), strings.TrimSpace(*name), converted.ExchangeRate.String(),
		converted.AmountInUSD.StringFixed(2), n.BaseCode,
	)
	return nil
}
