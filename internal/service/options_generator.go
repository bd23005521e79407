package service

import (
	"math/rand"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
)

// buildOptions returns count options for target: the target itself plus
// distinct distractors, in random order.
func buildOptions(target entities.Word, all []entities.Word, count int, rng *rand.Rand) []entities.Word {
	distractors := pickDistractors(target, all, count-1, rng)

	options := make([]entities.Word, 0, 1+len(distractors))
	options = append(options, target)
	options = append(options, distractors...)

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}

// pickDistractors chooses up to count words that differ from target and from each other.
func pickDistractors(target entities.Word, all []entities.Word, count int, rng *rand.Rand) []entities.Word {
	if count <= 0 {
		return nil
	}

	seen := map[string]bool{target.Text: true}

	// Create a pool of candidates
	candidates := make([]entities.Word, 0, len(all))
	for _, w := range all {
		if seen[w.Text] {
			continue
		}
		seen[w.Text] = true
		candidates = append(candidates, w)
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if len(candidates) > count {
		candidates = candidates[:count]
	}

	return candidates
}
