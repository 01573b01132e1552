package metadata_test

import (
	"errors"
	"testing"

	"github.com/djdv/go-arguments/internal/metadata"
)

type (
	actionSettings struct {
		Action string `arg:"action,position=0"`
		Count  int
	}
	matchCaseActions struct {
		Action string `arg:"action,matchcase"`
	}
	levelAction  int
	typedActions struct {
		Level levelAction `arg:"action"`
	}
)

func TestActions(t *testing.T) {
	t.Parallel()
	t.Run("valid", testActionsValid)
	t.Run("invalid", testActionsInvalid)
}

func testActionsValid(t *testing.T) {
	t.Parallel()
	var (
		meta    = metadata.MustDescribe[actionSettings]()
		called  []string
		actions = metadata.Actions[actionSettings]{
			"add": func(set *actionSettings) error {
				called = append(called, "add")
				set.Count++
				return nil
			},
			"list": func(*actionSettings) error {
				called = append(called, "list")
				return nil
			},
		}
		set = actionSettings{Action: "add"}
	)
	if err := actions.Dispatch(meta, &set); err != nil {
		t.Fatal(err)
	}
	set.Action = "LIST"
	if err := actions.Dispatch(meta, &set); err != nil {
		t.Fatal(err)
	}
	if set.Count != 1 || len(called) != 2 ||
		called[0] != "add" || called[1] != "list" {
		t.Errorf("unexpected dispatch: %v (count %d)", called, set.Count)
	}
	var (
		typedMeta = metadata.MustDescribe[typedActions]()
		level     levelAction
		typed     = metadata.Actions[typedActions]{
			"3": func(set *typedActions) error {
				level = set.Level
				return nil
			},
		}
	)
	if err := typed.Dispatch(typedMeta, &typedActions{Level: 3}); err != nil {
		t.Fatal(err)
	}
	if level != 3 {
		t.Errorf("non-string action was not dispatched; got: %d", level)
	}
}

func testActionsInvalid(t *testing.T) {
	t.Parallel()
	var (
		failure = errors.New("action failed")
		meta    = metadata.MustDescribe[actionSettings]()
		actions = metadata.Actions[actionSettings]{
			"fail": func(*actionSettings) error { return failure },
		}
	)
	for _, test := range []struct {
		action string
		want   error
	}{
		{"fail", failure},
		{"dance", metadata.ErrUnknownAction},
		{"", metadata.ErrUnknownAction},
	} {
		set := actionSettings{Action: test.action}
		if err := actions.Dispatch(meta, &set); !errors.Is(err, test.want) {
			t.Errorf("%q"+
				"\n\tgot: %v"+
				"\n\twant: %v",
				test.action, err, test.want)
		}
	}
	matchCase := metadata.Actions[matchCaseActions]{
		"run": func(*matchCaseActions) error { return nil },
	}
	if err := matchCase.Dispatch(
		metadata.MustDescribe[matchCaseActions](),
		&matchCaseActions{Action: "RUN"},
	); !errors.Is(err, metadata.ErrUnknownAction) {
		t.Errorf("case-sensitive action matched a differently cased value"+
			"\n\tgot: %v"+
			"\n\twant: %v",
			err, metadata.ErrUnknownAction)
	}
	noAction := metadata.Actions[hookedSettings]{}
	if err := noAction.Dispatch(
		metadata.MustDescribe[hookedSettings](),
		&hookedSettings{},
	); !errors.Is(err, metadata.ErrNoAction) {
		t.Errorf("error mismatch"+
			"\n\tgot: %v"+
			"\n\twant: %v",
			err, metadata.ErrNoAction)
	}
}
