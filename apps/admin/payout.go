package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/payout"
)

// lineItems collects repeated -item & -bonus flags, in order.
type lineItems struct {
	items *[]payout.LineItem
	kind  payout.Kind
}

func (li lineItems) String() string {
	if li.items == nil {
		return ""
	}
	labels := make([]string, 0, len(*li.items))
	for _, item := range *li.items {
		if item.Kind == li.kind {
			labels = append(labels, item.Label())
		}
	}
	return strings.Join(labels, ", ")
}

// Set parses "hours:rate[:enrollment]" for classes and "description:amount" for bonuses.
func (li lineItems) Set(s string) error {
	switch li.kind {
	case payout.KindClass:
		parts := strings.Split(s, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return errors.Wrapf(errInvalidItemSpec, "%q, want HOURS:RATE[:ENROLLMENT]", s)
		}
		item := payout.LineItem{
			Kind:        payout.KindClass,
			HoursTaught: core.ParseAmount(parts[0]),
			PayPerHour:  core.ParseAmount(parts[1]),
		}
		if len(parts) == 3 {
			id, err := strconv.Atoi(parts[2])
			if err != nil {
				return errors.Wrapf(errInvalidItemSpec, "%q: enrollment %q", s, parts[2])
			}
			item.EnrollmentID = null.IntFrom(id)
		}
		*li.items = append(*li.items, item.Recompute())
	case payout.KindBonus:
		i := strings.LastIndex(s, ":")
		if i < 0 {
			return errors.Wrapf(errInvalidItemSpec, "%q, want DESCRIPTION:AMOUNT", s)
		}
		*li.items = append(*li.items, payout.NewBonusItem(s[:i], core.ParseAmount(s[i+1:])))
	}
	return nil
}

func (cli *commandLine) payoutCmd(args []string) error {
	var items []payout.LineItem

	fs := cli.newFlagSet("payout")
	fs.Var(lineItems{items: &items, kind: payout.KindClass}, "item", "A class taught, as HOURS:RATE[:ENROLLMENT]. Repeatable.")
	fs.Var(lineItems{items: &items, kind: payout.KindBonus}, "bonus", "A bonus, as DESCRIPTION:AMOUNT. Repeatable.")
	discount := fs.String("discount", "0", "The discount applied to the subtotal.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if len(items) == 0 {
		fs.Usage()
		return errHelp
	}

	preview := payout.BuildPreview(payout.PreviewRequest{Items: items, Discount: core.ParseAmount(*discount)})
	return cli.printPreview(preview)
}

func (cli *commandLine) printPreview(p payout.Preview) error {
	dropped := make(map[int]bool, len(p.Dropped))
	for _, i := range p.Dropped {
		dropped[i] = true
	}
	for i, item := range p.Items {
		mark := " "
		if dropped[i] {
			mark = "x" // not submitted
		}
		_, _ = fmt.Fprintf(cli.out, "%s %-40s %10s\n", mark, item.Label(), item.Value().StringFixed(2))
	}
	_, _ = fmt.Fprintf(cli.out, "  %-40s %10s\n", "subtotal", p.Summary.Subtotal.StringFixed(2))
	_, _ = fmt.Fprintf(cli.out, "  %-40s %10s\n", "discount", p.Summary.Discount.Neg().StringFixed(2))
	_, _ = fmt.Fprintf(cli.out, "  %-40s %10s\n", "total", p.Summary.Total.StringFixed(2))

	payload, err := json.MarshalIndent(p.Payload, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshalling payload")
	}
	_, _ = fmt.Fprintf(cli.out, "\ndetails:\n%s\n", payload)
	return nil
}
