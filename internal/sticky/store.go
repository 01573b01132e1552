// Package sticky remembers the last value supplied for an argument
// and offers it as the candidate value the next time the argument is omitted.
//
// Values are persisted in a line oriented file of `name=value` entries.
// Lines without a `=`, or that begin with `#`, are ignored.
// The file is read once when the [Store] is opened and rewritten in full
// after every change. Concurrent processes sharing a file
// may lose each other's updates (the last writer wins).
package sticky

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/djdv/go-arguments/internal/generic"
	"github.com/u-root/uio/ulog"
)

type (
	// Store is an in-memory map of argument names to their last values,
	// backed by a file.
	Store struct {
		log     ulog.Logger
		entries map[string]string
		path    string
		order   []string
		perm    fs.FileMode
	}

	// Entry is a remembered argument value.
	Entry struct {
		Name, Value string
	}

	// Option configures a [Store].
	Option func(*Store) error
)

const (
	// ErrDuplicateKey is returned when a store file
	// contains the same name more than once.
	ErrDuplicateKey = generic.ConstError("duplicate sticky argument name")
	// ErrInvalidEntry is returned by [Store.Set] for names or values
	// that could not be read back from the file.
	ErrInvalidEntry = generic.ConstError("invalid sticky argument")

	// FileName is the base name of the file returned by [DefaultPath].
	FileName = "sticky-args"

	separator     = "="
	commentPrefix = "#"
	filePerm      = 0o600
	directoryPerm = 0o700
)

// WithLogger sets the logger used to report loads and saves.
func WithLogger(log ulog.Logger) Option {
	return func(store *Store) error {
		store.log = log
		return nil
	}
}

// WithPermissions sets the permissions used when creating the file.
func WithPermissions(perm fs.FileMode) Option {
	return func(store *Store) error {
		if err := generic.ErrIfOptionWasSet("permissions", store.perm, filePerm); err != nil {
			return err
		}
		store.perm = perm
		return nil
	}
}

// DefaultPath returns the per-user state file path
// for a program's sticky arguments.
// E.g. `$XDG_STATE_HOME/program/sticky-args`.
func DefaultPath(program string) (string, error) {
	if program == "" {
		return "", errors.New("program name must not be empty")
	}
	if xdg.StateHome == "" {
		return "", errors.New("could not determine user state directory")
	}
	return filepath.Join(xdg.StateHome, program, FileName), nil
}

// Open loads the store from the file at `path`.
// A missing file is treated as an empty store,
// and is created when the first value is set.
func Open(path string, options ...Option) (*Store, error) {
	store := &Store{
		log:     ulog.Null,
		entries: make(map[string]string),
		path:    path,
		perm:    filePerm,
	}
	if err := generic.ApplyOptions(store, options...); err != nil {
		return nil, err
	}
	if err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

// Path returns the path of the store's file.
func (store *Store) Path() string { return store.path }

// Lookup returns the remembered value for `name`, if any.
func (store *Store) Lookup(name string) (string, bool) {
	value, ok := store.entries[name]
	return value, ok
}

// Entries returns the remembered values in file order.
func (store *Store) Entries() []Entry {
	entries := make([]Entry, len(store.order))
	for i, name := range store.order {
		entries[i] = Entry{
			Name:  name,
			Value: store.entries[name],
		}
	}
	return entries
}

// Set remembers `value` for `name` and saves the store.
// Neither may contain line breaks, and the name
// must not contain a `=` or begin with a `#`.
func (store *Store) Set(name, value string) error {
	if err := checkEntry(name, value); err != nil {
		return err
	}
	if _, exists := store.entries[name]; !exists {
		store.order = append(store.order, name)
	}
	store.entries[name] = value
	return store.save()
}

// Delete forgets the value for `name` and saves the store.
// Deleting a name that isn't present is not an error.
func (store *Store) Delete(name string) error {
	if _, exists := store.entries[name]; !exists {
		return nil
	}
	delete(store.entries, name)
	for i, ordered := range store.order {
		if ordered == name {
			store.order = append(store.order[:i], store.order[i+1:]...)
			break
		}
	}
	return store.save()
}

func checkEntry(name, value string) error {
	const lineBreaks = "\r\n"
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidEntry)
	case strings.ContainsAny(name, lineBreaks+separator),
		strings.HasPrefix(strings.TrimSpace(name), commentPrefix):
		return fmt.Errorf("%w: name %q", ErrInvalidEntry, name)
	case strings.ContainsAny(value, lineBreaks):
		return fmt.Errorf("%w: value of `%s` contains a line break"+
			"\n\tgot: %q",
			ErrInvalidEntry, name, value)
	}
	return nil
}

func (store *Store) load() error {
	file, err := os.Open(store.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			store.log.Printf("sticky: %s does not exist (yet)", store.path)
			return nil
		}
		return err
	}
	var (
		reader     = bufio.NewReader(file)
		lineNumber int
	)
	for {
		// Lines are unbounded; the final line may lack a newline.
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return generic.CloseWithError(err, file)
		}
		if line != "" {
			lineNumber++
			if err := store.parseLine(line, lineNumber); err != nil {
				return generic.CloseWithError(err, file)
			}
		}
		if err != nil {
			break
		}
	}
	store.log.Printf("sticky: loaded %d values from %s", len(store.order), store.path)
	return file.Close()
}

func (store *Store) parseLine(line string, lineNumber int) error {
	line = strings.TrimRight(line, "\r\n")
	key, value, found := strings.Cut(line, separator)
	if !found ||
		strings.HasPrefix(strings.TrimSpace(line), commentPrefix) {
		return nil
	}
	key = strings.TrimSpace(key)
	if _, exists := store.entries[key]; exists {
		return fmt.Errorf("%w: %q (%s:%d)",
			ErrDuplicateKey, key, store.path, lineNumber)
	}
	store.entries[key] = strings.TrimSpace(value)
	store.order = append(store.order, key)
	return nil
}

func (store *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(store.path), directoryPerm); err != nil {
		return err
	}
	file, err := os.OpenFile(store.path,
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC, store.perm)
	if err != nil {
		return err
	}
	writer := bufio.NewWriter(file)
	for _, name := range store.order {
		if _, err := writer.WriteString(
			name + separator + store.entries[name] + "\n",
		); err != nil {
			return generic.CloseWithError(err, file)
		}
	}
	if err := writer.Flush(); err != nil {
		return generic.CloseWithError(err, file)
	}
	store.log.Printf("sticky: saved %d values to %s", len(store.order), store.path)
	return file.Close()
}
