package argument_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/djdv/go-arguments/internal/argument"
	"github.com/djdv/go-arguments/internal/revive"
)

type (
	testSettings struct {
		Name    string
		Count   int
		Verbose bool
	}

	// funcHook calls whichever of its functions are set,
	// and records each call in its journal.
	funcHook struct {
		argument.HookBase
		name                     string
		journal                  *[]string
		beforeParse              func(*argument.ParseContext) error
		beforePopulateProperties func(*argument.ObjectContext) error
		beforePopulateProperty   func(*argument.BeforePropertyContext) error
		afterPopulateProperty    func(*argument.AfterPropertyContext) error
		afterPopulateProperties  func(*argument.ObjectContext) error
	}

	fixedTokenizer struct {
		candidates argument.Candidates
		got        []string
	}

	recordLogger struct{ lines []string }
)

func (hook *funcHook) record(stage argument.Stage) {
	if hook.journal != nil {
		*hook.journal = append(*hook.journal, hook.name+":"+stage.String())
	}
}

func (hook *funcHook) BeforeParse(ctx *argument.ParseContext) error {
	hook.record(argument.BeforeParse)
	if hook.beforeParse != nil {
		return hook.beforeParse(ctx)
	}
	return nil
}

func (hook *funcHook) BeforePopulateProperties(ctx *argument.ObjectContext) error {
	hook.record(argument.BeforePopulateProperties)
	if hook.beforePopulateProperties != nil {
		return hook.beforePopulateProperties(ctx)
	}
	return nil
}

func (hook *funcHook) BeforePopulateProperty(ctx *argument.BeforePropertyContext) error {
	hook.record(argument.BeforePopulateProperty)
	if hook.beforePopulateProperty != nil {
		return hook.beforePopulateProperty(ctx)
	}
	return nil
}

func (hook *funcHook) AfterPopulateProperty(ctx *argument.AfterPropertyContext) error {
	hook.record(argument.AfterPopulateProperty)
	if hook.afterPopulateProperty != nil {
		return hook.afterPopulateProperty(ctx)
	}
	return nil
}

func (hook *funcHook) AfterPopulateProperties(ctx *argument.ObjectContext) error {
	hook.record(argument.AfterPopulateProperties)
	if hook.afterPopulateProperties != nil {
		return hook.afterPopulateProperties(ctx)
	}
	return nil
}

func (tokenizer *fixedTokenizer) Tokenize(arguments []string, _ []*argument.Descriptor) (argument.Candidates, error) {
	tokenizer.got = arguments
	return tokenizer.candidates, nil
}

func (rl *recordLogger) Printf(format string, v ...any) {
	rl.lines = append(rl.lines, fmt.Sprintf(format, v...))
}

func (rl *recordLogger) Print(v ...any) {
	rl.lines = append(rl.lines, fmt.Sprint(v...))
}

// allPriorities returns priorities with every stage set to `priority`.
func allPriorities(priority int) argument.Priorities {
	return argument.Priorities{
		BeforeParse:              priority,
		BeforePopulateProperties: priority,
		BeforePopulateProperty:   priority,
		AfterPopulateProperty:    priority,
		AfterPopulateProperties:  priority,
	}
}

// property describes the field of `testSettings`
// named `field`, using its lower case name.
func property(t *testing.T, field string, hooks ...argument.Hook) *argument.Descriptor {
	t.Helper()
	structField, ok := reflect.TypeOf(testSettings{}).FieldByName(field)
	if !ok {
		t.Fatalf("testSettings has no field named %s", field)
	}
	return &argument.Descriptor{
		Name:     strings.ToLower(field),
		Position: argument.NoPosition,
		Hooks:    hooks,
		Index:    structField.Index,
		Type:     structField.Type,
	}
}

func testMetadata(properties ...*argument.Descriptor) *argument.Metadata {
	return &argument.Metadata{
		Type:       reflect.TypeOf(testSettings{}),
		Properties: properties,
	}
}

func newEngine(t *testing.T, options ...argument.EngineOption) *argument.Engine {
	t.Helper()
	reviver, err := revive.New()
	if err != nil {
		t.Fatal(err)
	}
	engine, err := argument.NewEngine(reviver, options...)
	if err != nil {
		t.Fatal(err)
	}
	return engine
}
