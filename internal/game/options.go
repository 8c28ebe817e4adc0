package game

import (
	"math/rand"

	"globetrotter-service/internal/domain"
)

// placeholderOptions pad the choice set when the pool is too small to supply
// three real distractors. The UI always renders exactly four options.
var placeholderOptions = []string{
	"London, UK",
	"New York City, USA",
	"Tokyo, Japan",
	"Paris, France",
}

// GenerateOptions builds the four shuffled answer options for current: its
// own "{name}, {country}" string plus three distractors sampled uniformly
// without replacement from the rest of the pool.
func GenerateOptions(rnd *rand.Rand, current domain.City, pool []domain.City) []string {
	correct := current.Answer()

	if len(pool) < 4 {
		return shuffled(rnd, padOptions(correct, nil))
	}

	others := make([]domain.City, 0, len(pool))
	for _, c := range pool {
		if c.Answer() != correct {
			others = append(others, c)
		}
	}

	// Uniform sample of 3 distinct indices by rejection.
	used := make(map[int]struct{}, 3)
	wrong := make([]string, 0, 3)
	for len(wrong) < 3 && len(wrong) < len(others) {
		idx := rnd.Intn(len(others))
		if _, taken := used[idx]; taken {
			continue
		}
		used[idx] = struct{}{}
		wrong = append(wrong, others[idx].Answer())
	}

	return shuffled(rnd, padOptions(correct, wrong))
}

// padOptions tops the distractor set up to three from the placeholders,
// skipping any that collide with an option already present.
func padOptions(correct string, wrong []string) []string {
	options := append([]string{correct}, wrong...)
	present := make(map[string]struct{}, 4)
	for _, o := range options {
		present[o] = struct{}{}
	}
	for _, p := range placeholderOptions {
		if len(options) >= 4 {
			break
		}
		if _, dup := present[p]; dup {
			continue
		}
		present[p] = struct{}{}
		options = append(options, p)
	}
	return options
}

func shuffled(rnd *rand.Rand, options []string) []string {
	rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
