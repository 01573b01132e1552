package revive_test

import (
	"errors"
	"net/netip"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/djdv/go-arguments/internal/revive"
	"github.com/google/go-cmp/cmp"
	"github.com/multiformats/go-multiaddr"
)

type (
	level    int
	reviveFn func(*testing.T, *revive.Registry)
)

func TestRevive(t *testing.T) {
	t.Parallel()
	registry, err := revive.New(
		revive.With(revive.NewParser(multiaddr.NewMultiaddr)),
	)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		name string
		fn   reviveFn
	}{
		{"builtin", testReviveBuiltin},
		{"vector", testReviveVector},
		{"pointer", testRevivePointer},
		{"text unmarshaler", testReviveText},
		{"parser", testReviveParser},
		{"invalid", testReviveInvalid},
	} {
		var (
			name = test.name
			fn   = test.fn
		)
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			fn(t, registry)
		})
	}
}

func revived[T any](t *testing.T, registry *revive.Registry, value string) T {
	t.Helper()
	typ := reflect.TypeOf((*T)(nil)).Elem()
	goValue, err := registry.Revive(typ, value)
	if err != nil {
		t.Fatalf("reviving %q as %s: %v", value, typ, err)
	}
	typed, ok := goValue.(T)
	if !ok {
		t.Fatalf("type mismatch"+
			"\n\tgot: %T"+
			"\n\twant: %s",
			goValue, typ)
	}
	return typed
}

func testReviveBuiltin(t *testing.T, registry *revive.Registry) {
	if got, want := revived[string](t, registry, "blue"), "blue"; got != want {
		t.Errorf("string: got %q want %q", got, want)
	}
	if got, want := revived[bool](t, registry, "true"), true; got != want {
		t.Errorf("bool: got %t want %t", got, want)
	}
	if got, want := revived[int](t, registry, "-12"), -12; got != want {
		t.Errorf("int: got %d want %d", got, want)
	}
	if got, want := revived[uint16](t, registry, "0x10"), uint16(16); got != want {
		t.Errorf("uint16: got %d want %d", got, want)
	}
	if got, want := revived[float64](t, registry, "1.5"), 1.5; got != want {
		t.Errorf("float64: got %f want %f", got, want)
	}
	if got, want := revived[complex128](t, registry, "1+2i"), complex(1, 2); got != want {
		t.Errorf("complex128: got %v want %v", got, want)
	}
	if got, want := revived[level](t, registry, "3"), level(3); got != want {
		t.Errorf("named int: got %d want %d", got, want)
	}
	if got, want := revived[time.Duration](t, registry, "1m30s"), 90*time.Second; got != want {
		t.Errorf("duration: got %s want %s", got, want)
	}
}

func testReviveVector(t *testing.T, registry *revive.Registry) {
	var (
		gotStrings  = revived[[]string](t, registry, `red,"green, blue",`)
		wantStrings = []string{"red", "green, blue", ""}
	)
	if diff := cmp.Diff(wantStrings, gotStrings); diff != "" {
		t.Errorf("[]string mismatch (-want +got):\n%s", diff)
	}
	var (
		gotInts  = revived[[3]int](t, registry, "1,2")
		wantInts = [3]int{1, 2, 0}
	)
	if diff := cmp.Diff(wantInts, gotInts); diff != "" {
		t.Errorf("[3]int mismatch (-want +got):\n%s", diff)
	}
	var (
		gotDurations  = revived[[]time.Duration](t, registry, "1s,2ms")
		wantDurations = []time.Duration{time.Second, 2 * time.Millisecond}
	)
	if diff := cmp.Diff(wantDurations, gotDurations); diff != "" {
		t.Errorf("[]time.Duration mismatch (-want +got):\n%s", diff)
	}
}

func testRevivePointer(t *testing.T, registry *revive.Registry) {
	got := revived[*int](t, registry, "7")
	if got == nil || *got != 7 {
		t.Errorf("*int: got %v want pointer to 7", got)
	}
}

func testReviveText(t *testing.T, registry *revive.Registry) {
	var (
		got  = revived[netip.Addr](t, registry, "127.0.0.1")
		want = netip.MustParseAddr("127.0.0.1")
	)
	if got != want {
		t.Errorf("netip.Addr: got %s want %s", got, want)
	}
}

func testReviveParser(t *testing.T, registry *revive.Registry) {
	const address = "/ip4/127.0.0.1/tcp/8080"
	var (
		got       = revived[multiaddr.Multiaddr](t, registry, address)
		want, err = multiaddr.NewMultiaddr(address)
	)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Errorf("multiaddr: got %s want %s", got, want)
	}
	addrs := revived[[]multiaddr.Multiaddr](t, registry, address+","+address)
	if len(addrs) != 2 || !addrs[1].Equal(want) {
		t.Errorf("[]multiaddr: got %v", addrs)
	}
	if _, err := registry.Revive(reflect.TypeOf((*multiaddr.Multiaddr)(nil)).Elem(),
		"not a multiaddr"); err == nil {
		t.Error("expected error for malformed multiaddr but got none")
	}

	// Parsers registered later replace earlier ones.
	override, err := revive.New(
		revive.With(revive.NewParser(func(string) (time.Duration, error) {
			return time.Hour, nil
		})),
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := revived[time.Duration](t, override, "1s"); got != time.Hour {
		t.Errorf("parser override: got %s want %s", got, time.Hour)
	}
}

func testReviveInvalid(t *testing.T, registry *revive.Registry) {
	for _, test := range []struct {
		typ   reflect.Type
		value string
		is    error
	}{
		{reflect.TypeOf(0), "abc", strconv.ErrSyntax},
		{reflect.TypeOf(int8(0)), "300", strconv.ErrRange},
		{reflect.TypeOf(false), "maybe", strconv.ErrSyntax},
		{reflect.TypeOf([1]int{}), "1,2", nil},
		{reflect.TypeOf([]int{}), "1,x", strconv.ErrSyntax},
		{reflect.TypeOf(struct{}{}), "{}", revive.ErrUnexpectedType},
		{reflect.TypeOf(map[string]string{}), "a=b", revive.ErrUnexpectedType},
	} {
		_, err := registry.Revive(test.typ, test.value)
		if err == nil {
			t.Errorf("expected error reviving %q as %s but got none",
				test.value, test.typ)
			continue
		}
		if test.is != nil && !errors.Is(err, test.is) {
			t.Errorf("error mismatch for %q as %s"+
				"\n\tgot: %v"+
				"\n\twant: %v",
				test.value, test.typ, err, test.is)
		}
	}
}
