package prefixtree

import (
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// fakeKeys returns lowercase keys made of fake words. Words may repeat.
func fakeKeys(faker *gofakeit.Faker, total int) []string {
	keys := make([]string, 0, total)

	for len(keys) < total {
		var key string

		switch faker.Number(0, 2) {
		case 0:
			key = lowerLetters(faker.Word())
		case 1:
			key = lowerLetters(faker.Noun())
		default:
			key = lowerLetters(faker.Word() + faker.HipsterWord())
		}

		if key != "" {
			keys = append(keys, key)
		}
	}

	return keys
}

// lowerLetters drops everything but 'a'..'z' from a lowercased string.
func lowerLetters(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= firstLetter && r <= lastLetter {
			return r
		}
		return -1
	}, strings.ToLower(s))
}
