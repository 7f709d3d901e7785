package builder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"art", "nature", "complement"}, Tokenize("Art is the a Nature; I complement!"))
}

func TestFitTFIDF_SmoothIDF(t *testing.T) {
	m, vectors := FitTFIDF([]string{"apple banana", "apple cherry"}, 0)

	assert.Equal(t, []string{"apple", "banana", "cherry"}, m.Vocabulary())

	// idf(apple) = ln(3/3)+1 = 1, idf(banana) = ln(3/2)+1
	banana := math.Log(1.5) + 1
	norm := math.Sqrt(1 + banana*banana)
	assert.InDelta(t, 1/norm, vectors[0][0], 1e-9)
	assert.InDelta(t, banana/norm, vectors[0][1], 1e-9)
	assert.Equal(t, 0.0, vectors[0][2])

	assert.InDelta(t, 1.0, Cosine(vectors[0], vectors[0]), 1e-9)
	assert.InDelta(t, 1/(norm*norm), Cosine(vectors[0], vectors[1]), 1e-9)
}

func TestFitTFIDF_MaxFeaturesKeepsFrequentTerms(t *testing.T) {
	m, vectors := FitTFIDF([]string{"rare common common", "common plain"}, 2)

	// common appears 3 times; plain and rare tie on 1 and break alphabetically
	assert.Equal(t, []string{"common", "plain"}, m.Vocabulary())
	assert.Len(t, vectors[0], 2)
}

func TestTransform_EmptyDocumentIsZero(t *testing.T) {
	m, _ := FitTFIDF([]string{"apple"}, 0)

	assert.Equal(t, []float64{0}, m.Transform("the and of"))
}
