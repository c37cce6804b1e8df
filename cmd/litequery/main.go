// Command litequery answers introspection commands and simple SELECT
// queries against an SQLite 3 database file without an SQLite engine.
//
//	litequery sample.db .dbinfo
//	litequery sample.db .tables
//	litequery sample.db "SELECT name, color FROM apples WHERE color = 'Red'"
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
	"github.com/FocuswithJustin/litequery/core/sqlite"
	"github.com/FocuswithJustin/litequery/internal/config"
	"github.com/FocuswithJustin/litequery/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for litequery.
type CLI struct {
	LogLevel   string `name:"log-level" default:"${default_log_level}" env:"LITEQUERY_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	LogFormat  string `name:"log-format" default:"${default_log_format}" env:"LITEQUERY_LOG_FORMAT" help:"Log format (text, json)"`
	CachePages int    `name:"cache-pages" default:"${default_cache_pages}" env:"LITEQUERY_CACHE_PAGES" help:"Pages kept in the page cache (0 disables it)"`

	Version kong.VersionFlag `help:"Print version information"`

	Database string   `arg:"" help:"Path to the database file (may be xz or gzip compressed)"`
	Command  []string `arg:"" help:"Meta-command (.dbinfo, .tables, .schema, .digest) or SELECT statement"`
}

// Config converts the parsed flags to a run configuration.
func (c *CLI) Config() config.Config {
	return config.Config{
		DatabasePath: c.Database,
		Command:      strings.TrimSpace(strings.Join(c.Command, " ")),
		LogLevel:     strings.ToLower(c.LogLevel),
		LogFormat:    strings.ToLower(c.LogFormat),
		CachePages:   c.CachePages,
	}
}

// exitCode carries a kong exit request out of Parse.
type exitCode int

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			if c, ok := r.(exitCode); ok {
				code = int(c)
				return
			}
			fmt.Fprintf(stderr, "Error: %v\n", r)
			code = 1
		}
	}()

	var cli CLI
	parser, err := newParser(&cli, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	cfg := cli.Config()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	format, _ := logging.ParseFormat(cfg.LogFormat)
	logging.InitLoggerTo(stderr, level, format)

	out := bufio.NewWriter(stdout)
	err = logging.RunCommand(context.Background(), commandName(cfg.Command), func(ctx context.Context) error {
		return execute(ctx, cfg, out)
	})
	if flushErr := out.Flush(); err == nil && flushErr != nil {
		err = liteerrors.NewIO("write", "stdout", flushErr)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newParser builds the kong parser for cli. Flag defaults come from
// config.Default.
func newParser(cli *CLI, stdout, stderr io.Writer) (*kong.Kong, error) {
	def := config.Default()
	return kong.New(cli,
		kong.Name("litequery"),
		kong.Description("Read-only queries over SQLite database files"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":             version,
			"default_log_level":   def.LogLevel,
			"default_log_format":  def.LogFormat,
			"default_cache_pages": strconv.Itoa(def.CachePages),
		},
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
	)
}

// commandName is the command as logged: meta-commands as given, statements
// by their first word.
func commandName(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	if strings.HasPrefix(fields[0], ".") {
		return fields[0]
	}
	return strings.ToUpper(fields[0])
}

func execute(ctx context.Context, cfg config.Config, out io.Writer) error {
	db, err := sqlite.Open(cfg.DatabasePath, sqlite.Options{CachePages: cfg.CachePages})
	if err != nil {
		return err
	}
	defer db.Close()

	switch cfg.Command {
	case ".dbinfo":
		return dbinfo(ctx, db, out)
	case ".tables":
		return tables(ctx, db, out)
	case ".schema":
		return schema(ctx, db, out)
	case ".digest":
		return digest(ctx, db, out)
	}
	if strings.HasPrefix(cfg.Command, ".") {
		return liteerrors.NewUnsupportedCommand(commandName(cfg.Command))
	}
	return query(ctx, db, cfg.Command, out)
}
