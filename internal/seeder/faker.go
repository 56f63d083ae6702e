package seeder

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"
)

// DataGenerator produces the synthetic field values for every entity. All
// randomness flows through one seeded faker so a run is reproducible.
type DataGenerator struct {
	faker *gofakeit.Faker
	seed  uint64
	now   func() time.Time
	email func() string
}

func NewDataGenerator(seed uint64) *DataGenerator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	f := gofakeit.New(seed)
	return &DataGenerator{
		faker: f,
		seed:  seed,
		now:   time.Now,
		email: f.Email,
	}
}

func (g *DataGenerator) Seed() uint64 { return g.seed }

func (g *DataGenerator) Name() string     { return g.faker.Name() }
func (g *DataGenerator) Username() string { return g.faker.Username() }
func (g *DataGenerator) Email() string    { return g.email() }
func (g *DataGenerator) Company() string  { return g.faker.Company() }
func (g *DataGenerator) Phone() string    { return g.faker.Phone() }
func (g *DataGenerator) Word() string     { return g.faker.Word() }
func (g *DataGenerator) UUID() string     { return g.faker.UUID() }
func (g *DataGenerator) Title() string    { return g.faker.MovieName() }

func (g *DataGenerator) Address() string {
	return g.faker.Address().Address
}

func (g *DataGenerator) CompanyEmail() string {
	return "contact@" + g.faker.DomainName()
}

// Phrase returns a short capitalised phrase, used for episode titles.
func (g *DataGenerator) Phrase() string {
	words := []string{g.faker.Adjective(), g.faker.Noun()}
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Text returns whole sentences totalling at most maxChars characters.
func (g *DataGenerator) Text(maxChars int) string {
	var b strings.Builder
	for {
		sentence := g.faker.LoremIpsumSentence(g.IntRange(4, 12))
		if b.Len() == 0 && len(sentence) > maxChars {
			return strings.TrimSpace(sentence[:maxChars])
		}
		if b.Len() > 0 && b.Len()+1+len(sentence) > maxChars {
			return b.String()
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sentence)
	}
}

// PasswordHash returns the bcrypt hash of a freshly generated password.
func (g *DataGenerator) PasswordHash() (string, error) {
	password := g.faker.Password(true, true, true, false, false, 12)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// IntRange returns an int in [min, max].
func (g *DataGenerator) IntRange(min, max int) int {
	return g.faker.IntRange(min, max)
}

// Pick returns an index in [0, n).
func (g *DataGenerator) Pick(n int) int {
	return g.faker.IntRange(0, n-1)
}

func (g *DataGenerator) PickString(values []string) string {
	return values[g.Pick(len(values))]
}

func (g *DataGenerator) PickFloat(values []float64) float64 {
	return values[g.Pick(len(values))]
}

func (g *DataGenerator) PickInt(values []int) int {
	return values[g.Pick(len(values))]
}

// Rating returns a value in [min, max] rounded to one decimal place.
func (g *DataGenerator) Rating(min, max float64) float64 {
	return math.Round(g.faker.Float64Range(min, max)*10) / 10
}

// Chance reports true with probability p. p >= 1 is always true and p <= 0
// never is.
func (g *DataGenerator) Chance(p float64) bool {
	return g.faker.Float64() < p
}

// DateBetween returns a calendar date between now+from and now+to, where the
// offsets are given in years (negative for the past).
func (g *DataGenerator) DateBetween(fromYears, toYears int) time.Time {
	now := g.now().UTC()
	start := now.AddDate(fromYears, 0, 0)
	end := now.AddDate(toYears, 0, 0)
	d := g.faker.DateRange(start, end).UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// UniqueEmail samples emails until one is found that is not in used, and
// records it there. It gives up after maxAttempts samples.
func (g *DataGenerator) UniqueEmail(used map[string]struct{}, maxAttempts int) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		email := g.Email()
		if _, taken := used[email]; taken {
			continue
		}
		used[email] = struct{}{}
		return email, nil
	}
	return "", fmt.Errorf("%w: no unused email after %d attempts (%d already issued)", ErrUniqueExhausted, maxAttempts, len(used))
}
