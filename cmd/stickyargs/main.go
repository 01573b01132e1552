// Command stickyargs greets someone, remembering
// the arguments it was last given.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/djdv/go-arguments/internal/argument"
	"github.com/djdv/go-arguments/internal/generic"
	"github.com/djdv/go-arguments/internal/metadata"
	"github.com/djdv/go-arguments/internal/resolve"
	"github.com/djdv/go-arguments/internal/revive"
	"github.com/djdv/go-arguments/internal/sticky"
	"github.com/multiformats/go-multiaddr"
	"github.com/olekukonko/tablewriter"
)

type (
	settings struct {
		Verbose  bool                `description:"log argument binding to stderr"`
		Action   string              `arg:"action,position=0" default:"greet" description:"what to do" example:"greet|print a greeting" example:"list|show remembered arguments" example:"forget|clear remembered arguments" example:"help|describe arguments"`
		Name     string              `arg:"position=1" sticky:"" default:"world" description:"who to greet"`
		Greeting string              `sticky:"" default:"Hello" description:"word to greet with"`
		Listen   multiaddr.Multiaddr `sticky:"" description:"address to mention in the greeting" example:"/ip4/127.0.0.1/tcp/8080"`
	}

	program struct {
		name        string
		storePath   string
		stdout      io.Writer
		stderr      io.Writer
		environment argument.Tokenizer
	}

	// verboseLog discards messages until the
	// `verbose` setting is bound to true.
	verboseLog struct {
		enabled *bool
		*log.Logger
	}
)

const (
	// ErrUsage is returned for actions the program doesn't recognize.
	ErrUsage = generic.ConstError("command called with unexpected arguments")

	storeEnvKey = "STICKYARGS_STORE"
)

func (*settings) ArgumentClass() metadata.Class {
	return metadata.Class{
		Description: "Greets someone, remembering the arguments it was last given.",
		Examples: []argument.Example{
			{Example: "greet alice -greeting Hi", Description: "greet alice with Hi (remembered)"},
			{Example: "greet", Description: "greet alice with Hi again"},
		},
	}
}

func (vl verboseLog) Printf(format string, v ...any) {
	if *vl.enabled {
		vl.Logger.Printf(format, v...)
	}
}

func (vl verboseLog) Print(v ...any) {
	if *vl.enabled {
		vl.Logger.Print(v...)
	}
}

func main() {
	var (
		name      = commandName()
		storePath = os.Getenv(storeEnvKey)
	)
	if storePath == "" {
		var err error
		if storePath, err = sticky.DefaultPath(name); err != nil {
			exitWithErr(err)
		}
	}
	prog := program{
		name:        name,
		storePath:   storePath,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		environment: resolve.NewEnvironment(name),
	}
	if err := prog.run(os.Args[1:]); err != nil {
		exitWithErr(err)
	}
}

// commandName will normalize argv[0] to the program's name (only).
// (No absolute path, no binary file extension, etc.)
func commandName() string {
	execName := filepath.Base(os.Args[0])
	return strings.TrimSuffix(
		execName,
		filepath.Ext(execName),
	)
}

func (prog *program) run(arguments []string) error {
	var (
		set    = new(settings)
		logger = verboseLog{
			enabled: &set.Verbose,
			Logger:  log.New(prog.stderr, prog.name+": ", 0),
		}
	)
	store, err := sticky.Open(prog.storePath, sticky.WithLogger(logger))
	if err != nil {
		return err
	}
	meta, err := metadata.Describe(reflect.TypeOf(set),
		metadata.WithTagHook(sticky.TagKey, sticky.TagHook(store)),
	)
	if err != nil {
		return err
	}
	engine, err := newEngine(logger, prog.environment)
	if err != nil {
		return err
	}
	if err := engine.Bind(set, meta, arguments); err != nil {
		return err
	}
	actions := metadata.Actions[settings]{
		"greet":  func(set *settings) error { return greet(prog.stdout, set) },
		"list":   func(*settings) error { return list(prog.stdout, store) },
		"forget": func(*settings) error { return forget(store) },
		"help":   func(*settings) error { return describe(prog.stdout, meta) },
	}
	if err := actions.Dispatch(meta, set); err != nil {
		if errors.Is(err, metadata.ErrUnknownAction) {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return err
	}
	return nil
}

func newEngine(logger verboseLog, environment argument.Tokenizer) (*argument.Engine, error) {
	commandLine, err := resolve.NewCommandLine(resolve.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	tokenizers := resolve.Chain{commandLine}
	if environment != nil {
		tokenizers = append(tokenizers, environment)
	}
	reviver, err := revive.New(
		revive.With(revive.NewParser(multiaddr.NewMultiaddr)),
	)
	if err != nil {
		return nil, err
	}
	return argument.NewEngine(reviver,
		argument.WithLogger(logger),
		argument.WithTokenizer(tokenizers),
	)
}

func greet(output io.Writer, set *settings) error {
	message := set.Greeting + ", " + set.Name + "!"
	if set.Listen != nil {
		message += " (listening on " + set.Listen.String() + ")"
	}
	_, err := fmt.Fprintln(output, message)
	return err
}

func newTable(output io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(output)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")
	table.SetCenterSeparator("┼")
	table.SetRowSeparator("─")
	table.SetHeader(header)
	return table
}

func list(output io.Writer, store *sticky.Store) error {
	entries := store.Entries()
	if len(entries) == 0 {
		_, err := fmt.Fprintln(output, "no remembered arguments")
		return err
	}
	table := newTable(output, "Argument", "Value")
	for _, entry := range entries {
		table.Append([]string{entry.Name, entry.Value})
	}
	table.Render()
	return nil
}

func forget(store *sticky.Store) error {
	var errs []error
	for _, entry := range store.Entries() {
		errs = append(errs, store.Delete(entry.Name))
	}
	return errors.Join(errs...)
}

func describe(output io.Writer, meta *argument.Metadata) error {
	if meta.Description != "" {
		if _, err := fmt.Fprintln(output, meta.Description); err != nil {
			return err
		}
	}
	for _, example := range meta.Examples {
		if _, err := fmt.Fprintf(output, "  %s  # %s\n",
			example.Example, example.Description); err != nil {
			return err
		}
	}
	table := newTable(output, "Argument", "Shortcut", "Position", "Description")
	for _, desc := range meta.Properties {
		var (
			name     = "-" + desc.Name
			shortcut string
			position string
		)
		if desc.Shortcut != "" {
			shortcut = "-" + desc.Shortcut
		}
		if desc.Positional() {
			position = strconv.Itoa(desc.Position)
		}
		if desc.Action {
			name = desc.Name
		}
		table.Append([]string{name, shortcut, position, desc.Description})
		for _, example := range desc.Examples {
			table.Append([]string{"", "", "", "  " + example.Example + "  " + example.Description})
		}
	}
	table.Render()
	return nil
}

func exitWithErr(err error) {
	const (
		success = iota
		failure
		misuse
	)
	var (
		code        = failure
		propertyErr *argument.PropertyError
	)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, resolve.ErrUnexpectedArgument) ||
		(errors.As(err, &propertyErr) && propertyErr.Kind != argument.ErrHook) {
		code = misuse
	}
	os.Stderr.WriteString(err.Error() + "\n")
	os.Exit(code)
}
