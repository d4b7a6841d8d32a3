package main

import (
	"log"
	"os"

	"github.com/trezcool/academia/core"
	logsvc "github.com/trezcool/academia/services/logger"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	logger.Enable(!conf.Debug)

	// start CLI
	cli := commandLine{
		conf:         conf,
		logger:       logger,
		out:          os.Stdout,
		currencyRepo: newRemoteCurrencyRepo,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Info("error: " + err.Error())
		}
		os.Exit(1)
	}
}
