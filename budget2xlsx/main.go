// Copyright 2021, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Command budget2xlsx exports a JSON project budget as an .xlsx workbook.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/budgetsheet/budget"
	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	fs := flag.NewFlagSet("budget2xlsx", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	flagOut := fs.String("o", "", "output file name (default input file + .xlsx)")
	flagArea := fs.String("area", budget.All, "area ID filter")
	flagScope := fs.String("scope", budget.All, "scope ID filter")
	flagCostType := fs.String("cost-type", budget.All, "cost type filter (labor, material, sub)")
	flagApplyFiltered := fs.Bool("apply-markups-to-filtered", false, "compute markups on the filtered items only")
	flagVerify := fs.Bool("verify", false, "read back the produced workbook")

	app := ffcli.Command{Name: "budget2xlsx", FlagSet: fs,
		ShortUsage: "budget2xlsx [flags] project.json",
		Options:    []ff.Option{ff.WithEnvVarPrefix("BUDGET2XLSX")},
		Exec: func(ctx context.Context, args []string) error {
			fn := "-"
			if len(args) != 0 && args[0] != "" {
				fn = args[0]
			}
			fh := os.Stdin
			if fn != "-" {
				var err error
				if fh, err = os.Open(fn); err != nil {
					return err
				}
			}
			p, err := budget.Load(fh)
			fh.Close()
			if err != nil {
				return err
			}

			filters := budget.Filters{AreaID: *flagArea, ScopeID: *flagScope, CostType: *flagCostType}
			filtered := budget.Filter(p.LineItems, filters)
			summary := budget.Summarize(p.LineItems, filtered, p.Markups, *flagApplyFiltered)
			pr := message.NewPrinter(language.AmericanEnglish)
			logger.Info("budget", "project", p.Name,
				"items", len(filtered), "of", len(p.LineItems),
				"subtotal", pr.Sprintf("$%.2f", summary.DirectSubtotal),
				"total", pr.Sprintf("$%.2f", summary.TotalBudget))

			for _, g := range budget.Group(filtered, p.Areas, p.Scopes) {
				logger.Debug("area", "name", g.AreaName,
					"scopes", len(g.Scopes),
					"subtotal", pr.Sprintf("$%.2f", g.Subtotal))
			}

			b := p.Workbook(filters, *flagApplyFiltered)
			if *flagVerify {
				if err := verify(b); err != nil {
					return err
				}
				logger.Debug("verified", "size", len(b))
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			out := *flagOut
			if out == "" && fn != "-" {
				out = strings.TrimSuffix(fn, ".json") + ".xlsx"
			}
			if out == "" || out == "-" {
				_, err = os.Stdout.Write(b)
				return err
			}
			return os.WriteFile(out, b, 0644)
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.ParseAndRun(ctx, os.Args[1:])
}
