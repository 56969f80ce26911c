package sharecode

import gonanoid "github.com/matoous/go-nanoid/v2"

// Length is the fixed size of every share code.
const Length = 8

// alphabet avoids URL-hostile characters so codes can be pasted anywhere.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Generate mints a new share code. Uniqueness is only guaranteed by the
// store's unique constraint; callers retry on a collision.
func Generate() (string, error) {
	return gonanoid.Generate(alphabet, Length)
}
