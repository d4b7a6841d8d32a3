package payout

import (
	"bytes"
	"net/mail"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/professor"
)

const (
	statementTemplate = "payout_statement"
	statementFilename = "payout-statement.csv"
)

type (
	statementLine struct {
		Label  string
		Amount string
	}

	statementData struct {
		ProfessorName string
		Lines         []statementLine
		Subtotal      string
		Discount      string
		Total         string
	}

	// StatementRow is a line of the CSV statement attached to payout notifications.
	StatementRow struct {
		Kind         string `csv:"kind"`
		EnrollmentID string `csv:"enrollment_id"`
		HoursTaught  string `csv:"hours_taught"`
		PayPerHour   string `csv:"pay_per_hour"`
		Description  string `csv:"description"`
		Amount       string `csv:"amount"`
	}
)

// StatementRows lists the payable items, followed by the discount and total rows.
func StatementRows(items []LineItem, sum Summary) []StatementRow {
	rows := make([]StatementRow, 0, len(items)+2)
	for _, item := range Payable(items) {
		row := StatementRow{Kind: item.Kind.String(), Amount: item.Value().StringFixed(2)}
		if item.IsClass() {
			if item.EnrollmentID.Valid {
				row.EnrollmentID = strconv.Itoa(item.EnrollmentID.Int)
			}
			row.HoursTaught = item.HoursTaught.String()
			row.PayPerHour = item.PayPerHour.StringFixed(2)
		} else {
			row.Description = core.CleanString(item.Description)
		}
		rows = append(rows, row)
	}
	rows = append(rows,
		StatementRow{Kind: "discount", Amount: sum.Discount.Neg().StringFixed(2)},
		StatementRow{Kind: "total", Amount: sum.Total.StringFixed(2)},
	)
	return rows
}

// newStatementMessage builds the payout statement email of prof, with the CSV statement attached.
func newStatementMessage(prof professor.Professor, items []LineItem, sum Summary) (*core.EmailMessage, error) {
	to, ok := prof.Address()
	if !ok {
		return nil, nil
	}

	data := statementData{
		ProfessorName: prof.Name,
		Subtotal:      sum.Subtotal.StringFixed(2),
		Discount:      sum.Discount.StringFixed(2),
		Total:         sum.Total.StringFixed(2),
	}
	for _, item := range Payable(items) {
		data.Lines = append(data.Lines, statementLine{Label: item.Label(), Amount: item.Value().StringFixed(2)})
	}

	msg := &core.EmailMessage{
		To:           []mail.Address{to},
		Subject:      "Payout statement",
		TemplateName: statementTemplate,
		TemplateData: data,
	}

	var buf bytes.Buffer
	if err := gocsv.Marshal(StatementRows(items, sum), &buf); err != nil {
		return nil, errors.Wrap(err, "marshalling statement")
	}
	if err := msg.Attach(&buf, statementFilename, "text/csv"); err != nil {
		return nil, errors.Wrap(err, "attaching statement")
	}
	return msg, nil
}
