package questions

import (
	"math/rand"
	"time"

	"github.com/interviewace/interviewace/internal/models"
)

const DefaultCount = 5

// Params narrows a catalog lookup. Category applies to technical mode,
// Role/Level to behavioral mode; Count caps the technical selection.
type Params struct {
	Category string
	Role     string
	Level    string
	Count    int
}

// Source hands out question lists for a session. It never fails: unknown
// categories and roles degrade to the default list. The rand source is
// injectable so selection is reproducible under test.
type Source struct {
	rng *rand.Rand
}

func NewSource(rng *rand.Rand) *Source {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Source{rng: rng}
}

func (s *Source) Questions(mode models.InterviewMode, p Params) []string {
	if mode == models.ModeTechnical {
		return s.technical(p.Category, p.Count)
	}
	return s.behavioral(p.Role, p.Level)
}

func (s *Source) technical(category string, count int) []string {
	pool, ok := technicalCatalog[category]
	if !ok {
		// unknown categories draw from the default list, same count rules
		pool = defaultQuestions
	}
	if count <= 0 {
		count = DefaultCount
	}
	if count > len(pool) {
		count = len(pool)
	}

	shuffled := append([]string(nil), pool...)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:count]
}

func (s *Source) behavioral(role, level string) []string {
	if levels, ok := behavioralCatalog[role]; ok {
		if qs, ok := levels[level]; ok {
			return append([]string(nil), qs...)
		}
	}
	return append([]string(nil), defaultQuestions...)
}

// HRQuestions returns the generic HR screen list.
func (s *Source) HRQuestions() []string {
	return append([]string(nil), hrQuestions...)
}

// CatalogSize reports how many questions a technical category holds; zero for
// unknown categories.
func CatalogSize(category string) int {
	return len(technicalCatalog[category])
}
