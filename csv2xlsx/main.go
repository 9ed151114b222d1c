// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Command csv2xlsx converts one or two CSV files into the two sheets
// ("Line Items" and "Summary") of a budget workbook.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/budgetsheet"
	"github.com/UNO-SOFT/budgetsheet/xlsx"
	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
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
	fs := flag.NewFlagSet("csv2xlsx", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	flagEnc := fs.String("charset", budgetsheet.EncName, "csv charset name")
	flagCurrency := fs.String("currency", "", "comma separated list of column names to format as currency")
	flagNumbers := fs.Bool("numbers", true, "store numeric looking fields as numbers")

	app := ffcli.Command{Name: "csv2xlsx", FlagSet: fs,
		ShortUsage: "csv2xlsx [flags] out.xlsx line-items.csv [summary.csv]",
		Options:    []ff.Option{ff.WithEnvVarPrefix("CSV2XLSX")},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) < 2 || len(args) > 3 {
				return flag.ErrHelp
			}
			currency := make(map[string]bool)
			for _, s := range strings.Split(*flagCurrency, ",") {
				if s = strings.TrimSpace(s); s != "" {
					currency[s] = true
				}
			}

			fn := args[0]
			fh := os.Stdout
			if !(fn == "" || fn == "-") {
				var err error
				if fh, err = os.Create(fn); err != nil {
					return err
				}
			}
			defer fh.Close()

			w := xlsx.NewWriter(fh)
			for i, fn := range args[1:] {
				sheetName := xlsx.LineItemsSheet
				if i == 1 {
					sheetName = xlsx.SummarySheet
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := copyFile(w, sheetName, *flagEnc, fn, currency, *flagNumbers); err != nil {
					return fmt.Errorf("%q: %w", fn, err)
				}
			}
			if err := w.Close(); err != nil {
				return err
			}
			return fh.Close()
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.ParseAndRun(ctx, os.Args[1:])
}

func copyFile(w budgetsheet.Writer, sheetName, encName, fn string, currency map[string]bool, numbers bool) error {
	cr, err := budgetsheet.OpenCsv(fn, encName)
	if err != nil {
		return err
	}
	defer cr.Close()

	row, err := cr.Read()
	if err != nil {
		return err
	}
	cols := make([]budgetsheet.Column, len(row))
	for i, r := range row {
		cols[i].Name = r
		cols[i].Header.FontBold = true
		if currency[r] {
			cols[i].Column.Format = xlsx.CurrencyFormat
		}
	}
	logger.Debug("header", "sheet", sheetName, "columns", row)
	sheet, err := w.NewSheet(sheetName, cols)
	if err != nil {
		return err
	}

	var n int
	var rowI []any
	for {
		if row, err = cr.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		rowI = rowI[:0]
		for _, s := range row {
			if numbers {
				if _, err := strconv.ParseFloat(s, 64); err == nil {
					rowI = append(rowI, budgetsheet.Number(s))
					continue
				}
			}
			rowI = append(rowI, s)
		}
		if err = sheet.AppendRow(rowI...); err != nil {
			return err
		}
		n++
	}
	logger.Info("copied", "sheet", sheetName, "file", fn, "rows", n)
	return sheet.Close()
}
