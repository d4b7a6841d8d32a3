package main

import (
	"fmt"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/pricing"
)

func (cli *commandLine) quoteCmd(args []string) error {
	fs := cli.newFlagSet("quote")
	students := fs.Int("students", 0, "The number of students enrolled.")
	single := fs.String("single", "0", "The price per student of a single enrollment.")
	couple := fs.String("couple", "0", "The price per student of a couple enrollment.")
	group := fs.String("group", "0", "The price per student of a group enrollment.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *students < 0 {
		fs.Usage()
		return errHelp
	}

	quote := pricing.Calculate(*students, pricing.Tier{
		Single: core.ParseAmount(*single),
		Couple: core.ParseAmount(*couple),
		Group:  core.ParseAmount(*group),
	})
	cli.printQuote(quote)
	return nil
}

func (cli *commandLine) printQuote(q pricing.Quote) {
	_, _ = fmt.Fprintf(cli.out, "students:          %d\n", q.StudentCount)
	_, _ = fmt.Fprintf(cli.out, "enrollment type:   %s\n", q.EnrollmentType)
	_, _ = fmt.Fprintf(cli.out, "price per student: %s\n", q.PricePerStudent.StringFixed(2))
	_, _ = fmt.Fprintf(cli.out, "total:             %s\n", q.TotalAmount.StringFixed(2))
}
