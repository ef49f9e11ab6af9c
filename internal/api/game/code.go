package game

import "math/rand/v2"

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateRoomCode draws length characters from codeAlphabet. The top-level
// math/rand/v2 source is a randomly seeded ChaCha8 generator.
func generateRoomCode(length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return string(buf)
}

// shuffleQuestions permutes qs in place (Fisher–Yates).
func shuffleQuestions[T any](qs []T) {
	rand.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})
}
