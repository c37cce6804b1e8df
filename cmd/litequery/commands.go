package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/FocuswithJustin/litequery/core/sqlite"
)

func dbinfo(ctx context.Context, db *sqlite.DB, out io.Writer) error {
	info, err := db.Info(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "database page size: %d\nnumber of tables: %d\n", info.PageSize, info.TableCount)
	return err
}

func tables(ctx context.Context, db *sqlite.DB, out io.Writer) error {
	names, err := db.Tables(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, strings.Join(names, " "))
	return err
}

// schema prints the DDL of every schema entry. Entries without SQL
// (automatic indexes) are skipped.
func schema(ctx context.Context, db *sqlite.DB, out io.Writer) error {
	entries, err := db.Schema(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.SQL == "" {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s;\n", e.SQL); err != nil {
			return err
		}
	}
	return nil
}

func digest(ctx context.Context, db *sqlite.DB, out io.Writer) error {
	sum, err := db.Digest(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "blake3: %s\n", sum)
	return err
}

// query prints each result row with its values joined by "|".
func query(ctx context.Context, db *sqlite.DB, stmt string, out io.Writer) error {
	res, err := db.Query(ctx, stmt)
	if err != nil {
		return err
	}
	for _, row := range res.Rows {
		if _, err := fmt.Fprintln(out, strings.Join(row, "|")); err != nil {
			return err
		}
	}
	return nil
}
