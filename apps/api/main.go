package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"

	dig_container "github.com/trezcool/academia/apps/api/di/dig"
	echoapi "github.com/trezcool/academia/apps/api/echo"
	"github.com/trezcool/academia/core"
	appfs "github.com/trezcool/academia/fs"
)

func main() {
	c := dig_container.New(core.NewConfig)

	must(c.Invoke(func(conf *core.Config, logger core.Logger, server *echoapi.Server) {
		// =========================================================================
		// Initialize App

		logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
		defer logger.Info("Application stopped")

		core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, conf.FrontendBaseURL, conf.Debug, logger)

		// =========================================================================
		// Start Debug Service
		//
		// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
		// /debug/vars - Added to the default mux by importing the expvar package.

		// Expose important info under /debug/vars.
		expvar.NewString("build").Set(conf.Build)
		expvar.NewString("env").Set(conf.Env)
		expvar.NewString("backend").Set(conf.Backend.BaseURL)

		go func() {
			if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
				logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
			}
		}()

		// =========================================================================
		// Start API Service

		go func() {
			server.Start()
		}()

		// =========================================================================
		// Shutdown

		select {
		case err := <-server.Errors():
			logger.Fatal(fmt.Sprintf("server error: %v", err), err)

		case sig := <-server.ShutdownSignal():
			logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
			defer cancel()

			// asking listener to shut down and shed load
			if err := server.Shutdown(ctx); err != nil {
				logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

				if err = server.Close(); err != nil {
					logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
				}
			}
		}
	}))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
