package game

import (
	"math/rand"
	"strings"
	"testing"

	"globetrotter-service/internal/domain"
)

func testPool() []domain.City {
	return []domain.City{
		{ID: "1", Name: "Paris", Country: "France", Clues: []string{"c"}, FunFacts: domain.StringList{"f"}},
		{ID: "2", Name: "Tokyo", Country: "Japan", Clues: []string{"c"}, FunFacts: domain.StringList{"f"}},
		{ID: "3", Name: "Cairo", Country: "Egypt", Clues: []string{"c"}, FunFacts: domain.StringList{"f"}},
		{ID: "4", Name: "Lima", Country: "Peru", Clues: []string{"c"}, FunFacts: domain.StringList{"f"}},
		{ID: "5", Name: "Oslo", Country: "Norway", Clues: []string{"c"}, FunFacts: domain.StringList{"f"}},
	}
}

func TestGenerateOptionsShape(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	pool := testPool()
	current := pool[0]

	for i := 0; i < 50; i++ {
		options := GenerateOptions(rnd, current, pool)
		if len(options) != 4 {
			t.Fatalf("expected 4 options, got %d: %v", len(options), options)
		}
		seen := make(map[string]struct{})
		correctCount := 0
		for _, o := range options {
			if _, dup := seen[o]; dup {
				t.Fatalf("duplicate option %q in %v", o, options)
			}
			seen[o] = struct{}{}
			if o == current.Answer() {
				correctCount++
			}
		}
		if correctCount != 1 {
			t.Fatalf("expected exactly one correct option, got %d in %v", correctCount, options)
		}
	}
}

func TestGenerateOptionsOrderVaries(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	pool := testPool()

	permutations := make(map[string]struct{})
	for i := 0; i < 30; i++ {
		options := GenerateOptions(rnd, pool[1], pool)
		permutations[strings.Join(options, "|")] = struct{}{}
	}
	if len(permutations) < 2 {
		t.Fatalf("expected varying option order across calls, got a single permutation")
	}
}

func TestGenerateOptionsSmallPoolFallsBack(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	small := []domain.City{
		{ID: "1", Name: "Quito", Country: "Ecuador"},
		{ID: "2", Name: "Hanoi", Country: "Vietnam"},
	}

	options := GenerateOptions(rnd, small[0], small)
	if len(options) != 4 {
		t.Fatalf("expected placeholder-padded set of 4, got %v", options)
	}
	found := false
	for _, o := range options {
		if o == "Quito, Ecuador" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected correct answer present in fallback set %v", options)
	}
}

func TestGenerateOptionsFallbackAvoidsPlaceholderCollision(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	small := []domain.City{{ID: "1", Name: "London", Country: "UK"}}

	options := GenerateOptions(rnd, small[0], small)
	if len(options) != 4 {
		t.Fatalf("expected 4 options even when the answer is a placeholder, got %v", options)
	}
	count := 0
	for _, o := range options {
		if o == "London, UK" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected the colliding placeholder deduplicated, got %v", options)
	}
}
