package main

import (
	"bytes"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/currency"
	logsvc "github.com/trezcool/academia/services/logger"
	inmemdb "github.com/trezcool/academia/storage/inmem"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	conf := core.NewTestConfig()
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)

	var out bytes.Buffer
	db := inmemdb.Open().Seed()

	// start CLI
	return &commandLine{
		conf:   conf,
		logger: logger,
		out:    &out,
		currencyRepo: func(*core.Config) (currency.Repository, error) {
			return inmemdb.NewCurrencyRepository(db), nil
		},
	}, &out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    []string
	extra      interface{}
}

func runCLITests(t *testing.T, tests []cliTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, out := setup(t)
			args := append([]string{"admin"}, tt.args...)

			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				assert.True(t, errors.Is(err, tt.wantErr), "cli.run() error = %v, wantErr %v", err, tt.wantErr)
			case tt.wantErrStr != "":
				if assert.Error(t, err) {
					assert.Contains(t, err.Error(), tt.wantErrStr)
				}
			default:
				assert.NoError(t, err)
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func Test_commandLine_run(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "no command", wantErr: errHelp, wantOut: []string{"Usage:"}},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp, wantOut: []string{"Usage:"}},
		{name: "help flag", args: []string{"quote", "-h"}, wantErr: errHelp, wantOut: []string{"-students"}},
		{name: "unknown flag", args: []string{"quote", "-lol"}, wantErrStr: "flag provided but not defined"},
	})
}

func Test_commandLine_quote(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "negative count", args: []string{"quote", "-students", "-1"}, wantErr: errHelp},
		{
			name:    "no students",
			args:    []string{"quote", "-single", "40"},
			wantOut: []string{"students:          0", "enrollment type:   group", "total:             0.00"},
		},
		{
			name:    "single",
			args:    []string{"quote", "-students", "1", "-single", "40", "-couple", "35", "-group", "30"},
			wantOut: []string{"enrollment type:   single", "price per student: 40.00", "total:             40.00"},
		},
		{
			name:    "couple",
			args:    []string{"quote", "-students", "2", "-single", "40", "-couple", "35", "-group", "30"},
			wantOut: []string{"enrollment type:   couple", "price per student: 35.00", "total:             70.00"},
		},
		{
			name:    "group with decimal comma",
			args:    []string{"quote", "-students", "4", "-group", "42,5"},
			wantOut: []string{"enrollment type:   group", "price per student: 42.50", "total:             170.00"},
		},
	})
}

func Test_commandLine_payout(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "no items", args: []string{"payout"}, wantErr: errHelp},
		{name: "bad class", args: []string{"payout", "-item", "2"}, wantErrStr: errInvalidItemSpec.Error()},
		{name: "bad enrollment", args: []string{"payout", "-item", "2:10:lol"}, wantErrStr: errInvalidItemSpec.Error()},
		{name: "bad bonus", args: []string{"payout", "-bonus", "exams"}, wantErrStr: errInvalidItemSpec.Error()},
		{
			name: "classes and bonuses",
			args: []string{
				"payout",
				"-item", "2:12.5:3",
				"-bonus", "exams: week 2:15",
				"-item", "0:10",
				"-discount", "5",
			},
			wantOut: []string{
				"Class: 2h x 12.50 (enrollment #3)",
				"exams: week 2",
				"x Class: 0h x 10.00",
				"subtotal",
				"40.00",
				"-5.00",
				"35.00",
				`"enrollmentId": 3`,
			},
		},
	})
}

func Test_commandLine_convert(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "no amount", args: []string{"convert", "-currency", "Bolívar"}, wantErr: errHelp},
		{name: "no currency", args: []string{"convert", "-amount", "10"}, wantErr: errHelp},
		{
			name:    "foreign currency",
			args:    []string{"convert", "-amount", "350", "-currency", "Bolívar", "-rate", "35"},
			wantOut: []string{"350 Bolívar at 35 = 10.00 USD"},
		},
		{
			name:    "legacy base name",
			args:    []string{"convert", "-amount", "12", "-currency", "DOLAR", "-rate", "35"},
			wantOut: []string{"12 DOLAR at 1 = 12.00 USD"},
		},
		{
			name:    "zero rate",
			args:    []string{"convert", "-amount", "12", "-currency", "Euro", "-rate", "0"},
			wantOut: []string{"= 12.00 USD"},
		},
	})
}

func Test_commandLine_currencies(t *testing.T) {
	tests := []cliTest{
		{name: "token configured", args: []string{"currencies"}, extra: "secret", wantOut: []string{"ID", "Bolívar"}},
		{name: "token prompted", args: []string{"currencies", "-ordering", "-code"}, wantOut: []string{"Enter API token:", "VES"}},
		{name: "token error", args: []string{"currencies"}, extra: errors.New("no tty"), wantErrStr: "no tty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, out := setup(t)

			var prompted bool
			readPasswordFunc = func(fd int) ([]byte, error) {
				prompted = true
				if err, ok := tt.extra.(error); ok {
					return nil, err
				}
				return []byte("token"), nil
			}
			if token, ok := tt.extra.(string); ok {
				cli.conf.Backend.Token = token
			}

			err := cli.run(append([]string{"admin"}, tt.args...))
			if tt.wantErrStr != "" {
				if assert.Error(t, err) {
					assert.Contains(t, err.Error(), tt.wantErrStr)
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.extra == nil, prompted)
			if tt.extra == nil {
				assert.Equal(t, "token", cli.conf.Backend.Token)
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func Test_commandLine_currencies_order(t *testing.T) {
	cli, out := setup(t)
	cli.conf.Backend.Token = "secret"

	assert.NoError(t, cli.run([]string{"admin", "currencies", "-ordering", "-code"}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if assert.Len(t, lines, 5) {
		assert.True(t, strings.HasPrefix(lines[1], "2 "), lines[1]) // VES
		assert.True(t, strings.HasSuffix(lines[2], "*"), lines[2])  // USD
		assert.True(t, strings.HasPrefix(lines[4], "3 "), lines[4]) // COP
	}
}

func Test_newRemoteCurrencyRepo(t *testing.T) {
	conf := core.NewTestConfig()
	_, err := newRemoteCurrencyRepo(conf)
	assert.Equal(t, errNoBackend, err)

	conf.Backend.BaseURL = "http://localhost:8000"
	repo, err := newRemoteCurrencyRepo(conf)
	assert.NoError(t, err)
	assert.NotNil(t, repo)
}
