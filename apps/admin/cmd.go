package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/currency"
	"github.com/trezcool/academia/storage/restapi"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp            = errors.New("help provided")
	errNoBackend       = errors.New("no backend configured: set <ENV>_BACKENDBASEURL")
	errInvalidItemSpec = errors.New("invalid item")
)

type commandLine struct {
	conf   *core.Config
	logger core.Logger
	out    io.Writer

	// currencyRepo returns the remote catalog, once the configuration is complete
	currencyRepo func(conf *core.Config) (currency.Repository, error)
}

func newRemoteCurrencyRepo(conf *core.Config) (currency.Repository, error) {
	if conf.Backend.BaseURL == "" {
		return nil, errNoBackend
	}
	return restapi.NewCurrencyRepository(restapi.NewClient(conf)), nil
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  quote -students N -single S -couple C -group G - price an enrollment")
	_, _ = fmt.Fprintln(cli.out, "  payout -item HOURS:RATE[:ENROLLMENT] ... -bonus DESCRIPTION:AMOUNT ... -discount D - summarize a payout")
	_, _ = fmt.Fprintln(cli.out, "  convert -amount A -currency NAME -rate R - convert an amount to dollars")
	_, _ = fmt.Fprintln(cli.out, "  currencies [-ordering code,-name] - list the currencies of the backend")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "quote":
		return cli.quoteCmd(args[2:])
	case "payout":
		return cli.payoutCmd(args[2:])
	case "convert":
		return cli.convertCmd(args[2:])
	case "currencies":
		return cli.currenciesCmd(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

// promptToken asks for the backend API token when none is configured.
func (cli *commandLine) promptToken() error {
	if cli.conf.Backend.Token != "" {
		return nil
	}
	_, _ = fmt.Fprint(cli.out, "Enter API token:")
	token, err := readPasswordFunc(syscall.Stdin)
	_, _ = fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	cli.conf.Backend.Token = string(token)
	return nil
}
