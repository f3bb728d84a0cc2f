// Command cbp-report computes regional indicators from County Business
// Patterns extracts and writes them as CSV and Excel reports.
//
//	cbp-report lq --small county.csv --small-geo 001 --large state.csv
//	cbp-report lq-table --data counties.csv --level two_digit
//	cbp-report shift-share --small-old c12.csv --small-new c17.csv --large-old s12.csv --large-new s17.csv
//	cbp-report specialization --small county.csv --large state.csv
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("cbp-report failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
