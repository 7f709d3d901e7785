package builder

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// runs of two or more word characters
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lower-cases text and splits it into terms, dropping stop words
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if !englishStopWords[t] {
			out = append(out, t)
		}
	}
	return out
}

// TFIDF is a fitted term weighting: raw term counts scaled by smoothed
// inverse document frequency, each document L2-normalised.
type TFIDF struct {
	vocabulary []string
	index      map[string]int
	idf        []float64
}

// FitTFIDF learns the vocabulary from docs, keeping the maxFeatures terms
// with the highest corpus frequency, and returns the weighted vectors.
func FitTFIDF(docs []string, maxFeatures int) (*TFIDF, [][]float64) {
	tokens := make([][]string, len(docs))
	corpusCount := make(map[string]int)
	docFreq := make(map[string]int)
	for i, d := range docs {
		tokens[i] = Tokenize(d)
		seen := make(map[string]bool)
		for _, t := range tokens[i] {
			corpusCount[t]++
			if !seen[t] {
				seen[t] = true
				docFreq[t]++
			}
		}
	}

	terms := make([]string, 0, len(corpusCount))
	for t := range corpusCount {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if corpusCount[terms[i]] != corpusCount[terms[j]] {
			return corpusCount[terms[i]] > corpusCount[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	m := &TFIDF{
		vocabulary: terms,
		index:      make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, t := range terms {
		m.index[t] = i
		m.idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i := range docs {
		vectors[i] = m.weigh(tokens[i])
	}
	return m, vectors
}

// Vocabulary returns the kept terms in alphabetical order
func (m *TFIDF) Vocabulary() []string {
	return append([]string(nil), m.vocabulary...)
}

// Transform weighs a new document with the fitted vocabulary
func (m *TFIDF) Transform(doc string) []float64 {
	return m.weigh(Tokenize(doc))
}

func (m *TFIDF) weigh(tokens []string) []float64 {
	v := make([]float64, len(m.vocabulary))
	for _, t := range tokens {
		if i, ok := m.index[t]; ok {
			v[i]++
		}
	}
	norm := 0.0
	for i := range v {
		v[i] *= m.idf[i]
		norm += v[i] * v[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range v {
			v[i] /= norm
		}
	}
	return v
}

// Cosine is the dot product of two L2-normalised vectors
func Cosine(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
