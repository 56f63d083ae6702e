package seeder

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestUniqueEmail(t *testing.T) {
	g := NewDataGenerator(1)
	used := make(map[string]struct{})

	for i := 0; i < 500; i++ {
		email, err := g.UniqueEmail(used, 1000)
		if err != nil {
			t.Fatalf("UniqueEmail failed at %d: %v", i, err)
		}
		if !strings.Contains(email, "@") {
			t.Errorf("Expected an email address, got %q", email)
		}
	}
	if len(used) != 500 {
		t.Errorf("Expected 500 distinct emails, got %d", len(used))
	}
}

func TestUniqueEmailExhausted(t *testing.T) {
	g := NewDataGenerator(1)
	calls := 0
	g.email = func() string {
		calls++
		return "taken@example.com"
	}
	used := map[string]struct{}{"taken@example.com": {}}

	_, err := g.UniqueEmail(used, 25)
	if !errors.Is(err, ErrUniqueExhausted) {
		t.Fatalf("Expected ErrUniqueExhausted, got %v", err)
	}
	if calls != 25 {
		t.Errorf("Expected 25 attempts, got %d", calls)
	}
}

func TestTextLength(t *testing.T) {
	g := NewDataGenerator(3)
	for i := 0; i < 200; i++ {
		text := g.Text(commentMaxChars)
		if text == "" {
			t.Fatal("Expected non-empty text")
		}
		if len(text) > commentMaxChars {
			t.Fatalf("Expected at most %d chars, got %d: %q", commentMaxChars, len(text), text)
		}
	}
}

func TestDateBetween(t *testing.T) {
	g := NewDataGenerator(5)
	fixed := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	lo := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		d := g.DateBetween(-3, 0)
		if d.Before(lo) || d.After(fixed) {
			t.Fatalf("Date %s outside [%s, %s]", d, lo, fixed)
		}
		if d.Hour() != 0 || d.Minute() != 0 || d.Location() != time.UTC {
			t.Fatalf("Expected a UTC calendar date, got %s", d)
		}
	}
}

func TestChance(t *testing.T) {
	g := NewDataGenerator(9)
	for i := 0; i < 100; i++ {
		if !g.Chance(1.0) {
			t.Fatal("Chance(1.0) returned false")
		}
		if g.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
	}
}

func TestRatingRange(t *testing.T) {
	g := NewDataGenerator(11)
	for i := 0; i < 200; i++ {
		r := g.Rating(1.0, 10.0)
		if r < 1.0 || r > 10.0 {
			t.Fatalf("Rating %v outside [1, 10]", r)
		}
		if scaled := r * 10; math.Abs(scaled-math.Round(scaled)) > 1e-9 {
			t.Fatalf("Rating %v has more than one decimal", r)
		}
	}
}

func TestPasswordHash(t *testing.T) {
	g := NewDataGenerator(13)
	hash, err := g.PasswordHash()
	if err != nil {
		t.Fatalf("PasswordHash failed: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Not a bcrypt hash: %v", err)
	}
	if cost != bcrypt.MinCost {
		t.Errorf("Expected cost %d, got %d", bcrypt.MinCost, cost)
	}
}

func TestSeedReproducible(t *testing.T) {
	a, b := NewDataGenerator(77), NewDataGenerator(77)
	for i := 0; i < 20; i++ {
		if x, y := a.Username(), b.Username(); x != y {
			t.Fatalf("Generators with the same seed diverged: %q vs %q", x, y)
		}
	}
	if NewDataGenerator(0).Seed() == 0 {
		t.Error("Expected a zero seed to be replaced with a random one")
	}
}
