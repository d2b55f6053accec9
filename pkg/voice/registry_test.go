package voice

import (
	"context"
	"testing"
)

func reply(s string) Handler {
	return func(ctx context.Context, transcript string) (string, error) {
		return s, nil
	}
}

func TestRegisterValidation(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("", []string{"x"}, reply("x")); err == nil {
		t.Error("empty name should be rejected")
	}
	if err := r.Register("a", nil, reply("x")); err == nil {
		t.Error("no phrases should be rejected")
	}
	if err := r.Register("a", []string{"x"}, nil); err == nil {
		t.Error("nil handler should be rejected")
	}
	if err := r.Register("a", []string{"x"}, reply("x")); err != nil {
		t.Fatalf("valid register failed: %v", err)
	}
	if err := r.Register("a", []string{"y"}, reply("y")); err == nil {
		t.Error("duplicate name should be rejected")
	}
}

func TestDispatchMatchesPhrase(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("range-up", []string{"range up", "zoom out"}, reply("range increased")); err != nil {
		t.Fatal(err)
	}

	got, err := r.Dispatch(context.Background(), "Radar RANGE UP please")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got != "range increased" {
		t.Errorf("got %q", got)
	}
}

func TestDispatchLongestPhraseWins(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("weather", []string{"weather"}, reply("generic")); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("weather-off", []string{"weather off"}, reply("specific")); err != nil {
		t.Fatal(err)
	}

	got, err := r.Dispatch(context.Background(), "turn weather off")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got != "specific" {
		t.Errorf("got %q, want the more specific command", got)
	}
}

func TestDispatchNoMatch(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("a", []string{"alpha"}, reply("a")); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Dispatch(context.Background(), "bravo"); err == nil {
		t.Error("unmatched transcript should error")
	}
	if _, err := r.Dispatch(context.Background(), "   "); err == nil {
		t.Error("empty transcript should error")
	}
}

func TestCommandsSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zulu", "alpha", "mike"} {
		if err := r.Register(name, []string{name}, reply(name)); err != nil {
			t.Fatal(err)
		}
	}
	names := r.Commands()
	if len(names) != 3 || names[0] != "alpha" || names[2] != "zulu" {
		t.Errorf("Commands() = %v", names)
	}
}
