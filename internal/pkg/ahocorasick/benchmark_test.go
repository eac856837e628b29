package ahocorasick

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

// generateWords returns n distinct pseudo-random lowercase words of 3 to
// 10 letters, deterministic across runs.
func generateWords(n int) []string {
	rng := rand.New(rand.NewSource(42))
	words := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for len(words) < n {
		length := 3 + rng.Intn(8)
		var sb strings.Builder
		for i := 0; i < length; i++ {
			sb.WriteByte(byte('a' + rng.Intn(26)))
		}
		w := sb.String()
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}

// generateText returns roughly n bytes of random letters and spaces with
// one of the words planted every ~100 bytes, so searches do real work.
func generateText(n int, words []string) string {
	rng := rand.New(rand.NewSource(7))
	var sb strings.Builder
	sb.Grow(n + 16)
	for sb.Len() < n {
		for i := 0; i < 99; i++ {
			c := byte('a' + rng.Intn(27))
			if c > 'z' {
				c = ' '
			}
			sb.WriteByte(c)
		}
		sb.WriteString(words[rng.Intn(len(words))])
	}
	return sb.String()
}

func BenchmarkBuild(b *testing.B) {
	for _, size := range []int{10, 100, 1000, 10000} {
		words := generateWords(size)
		b.Run(fmt.Sprintf("words=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := Compile(words); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFindAll(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		words := generateWords(size)
		text := generateText(64*1024, words)

		m, err := Compile(words)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(fmt.Sprintf("automaton/words=%d", size), func(b *testing.B) {
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				if _, err := m.FindAll(text); err != nil {
					b.Fatal(err)
				}
			}
		})

		b.Run(fmt.Sprintf("naive/words=%d", size), func(b *testing.B) {
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				naiveFindAll(words, text)
			}
		})
	}
}

func BenchmarkContains(b *testing.B) {
	words := generateWords(1000)
	// No planted words: the miss case walks the whole text.
	text := generateText(64*1024, []string{" "})

	m, err := Compile(words)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(text)))
	for i := 0; i < b.N; i++ {
		if _, err := m.Contains(text); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReplace(b *testing.B) {
	words := generateWords(100)
	text := generateText(64*1024, words)

	m, err := Compile(words)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(text)))
	for i := 0; i < b.N; i++ {
		if _, err := m.Replace(text, '*'); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkScanner(b *testing.B) {
	words := generateWords(100)
	text := []byte(generateText(1024*1024, words))

	m, err := Compile(words)
	if err != nil {
		b.Fatal(err)
	}

	s, err := NewScanner(m, func(Match) bool { return true })
	if err != nil {
		b.Fatal(err)
	}

	const chunk = 4096
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Reset()
		for off := 0; off < len(text); off += chunk {
			end := off + chunk
			if end > len(text) {
				end = len(text)
			}
			if _, err := s.Write(text[off:end]); err != nil {
				b.Fatal(err)
			}
		}
		s.Flush()
	}
}
