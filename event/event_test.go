package event

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Structural(BeginObject), "begin-object"},
		{Structural(EndArray), "end-array"},
		{Structural(EndOfDocument), "end-of-document"},
		{MakeKey("company"), "key(company)"},
		{MakeString("Example"), "string(Example)"},
		{MakeInt64(-5), "int64(-5)"},
		{MakeUint64(18446744073709551615), "uint64(18446744073709551615)"},
		{MakeFloat64(0.25), "float64(0.25)"},
		{MakeBool(true), "bool(true)"},
		{MakeNull(), "null"},
	}
	for _, tc := range tests {
		if got := tc.ev.String(); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}

func TestEventValue(t *testing.T) {
	tests := []struct {
		ev   Event
		want any
	}{
		{MakeKey("k"), "k"},
		{MakeString("s"), "s"},
		{MakeInt64(7), int64(7)},
		{MakeUint64(7), uint64(7)},
		{MakeFloat64(1.5), 1.5},
		{MakeBool(false), false},
		{MakeNull(), nil},
		{Structural(BeginArray), nil},
	}
	for _, tc := range tests {
		if got := tc.ev.Value(); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.ev.String(), got, tc.want)
		}
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	for _, ev := range []Event{Structural(BeginArray), MakeInt64(1), Structural(EndArray)} {
		more, err := r.Accept(&ev, nil)
		if err != nil || !more {
			t.Fatalf("Accept returned (%t, %v)", more, err)
		}
	}
	want := []string{"begin-array", "int64(1)", "end-array"}
	if diff := cmp.Diff(want, r.Strings()); diff != "" {
		t.Errorf("recorded events (-want +got):\n%s", diff)
	}
}
