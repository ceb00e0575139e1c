package retrieval

import (
	"math"
	"strings"
)

// BM25Params are the Okapi BM25 parameters
type BM25Params struct {
	K1      float64
	B       float64
	Epsilon float64 // Negative idf values are replaced by Epsilon times the average idf
}

// BM25 is an Okapi BM25 lexical index over a fixed corpus
type BM25 struct {
	params   BM25Params
	docFreqs []map[string]int
	docLens  []int
	avgdl    float64
	idf      map[string]float64
}

// Tokenize splits text on whitespace. Tokens keep their case and punctuation.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// NewBM25 builds the index over the tokenized corpus
func NewBM25(corpus [][]string, params BM25Params) *BM25 {
	index := &BM25{
		params:   params,
		docFreqs: make([]map[string]int, len(corpus)),
		docLens:  make([]int, len(corpus)),
		idf:      map[string]float64{},
	}

	// Number of documents containing each term
	nd := map[string]int{}
	total := 0
	for i, doc := range corpus {
		freqs := map[string]int{}
		for _, token := range doc {
			freqs[token]++
		}
		for token := range freqs {
			nd[token]++
		}
		index.docFreqs[i] = freqs
		index.docLens[i] = len(doc)
		total += len(doc)
	}
	if len(corpus) > 0 {
		index.avgdl = float64(total) / float64(len(corpus))
	}

	n := float64(len(corpus))
	idfSum := 0.0
	negative := []string{}
	for token, freq := range nd {
		idf := math.Log(n-float64(freq)+0.5) - math.Log(float64(freq)+0.5)
		index.idf[token] = idf
		idfSum += idf
		if idf < 0 {
			negative = append(negative, token)
		}
	}
	if len(nd) > 0 {
		eps := params.Epsilon * idfSum / float64(len(nd))
		for _, token := range negative {
			index.idf[token] = eps
		}
	}

	return index
}

// Len returns the number of indexed documents
func (b *BM25) Len() int {
	return len(b.docLens)
}

// Scores returns the raw BM25 score of every indexed document for the query tokens.
// Repeated query tokens count repeatedly.
func (b *BM25) Scores(query []string) []float64 {
	scores := make([]float64, len(b.docLens))

	avgdl := b.avgdl
	if avgdl == 0 {
		avgdl = 1
	}

	k1, bb := b.params.K1, b.params.B
	for _, token := range query {
		idf, ok := b.idf[token]
		if !ok {
			continue
		}
		for i, freqs := range b.docFreqs {
			tf := float64(freqs[token])
			if tf == 0 {
				continue
			}
			norm := k1 * (1 - bb + bb*float64(b.docLens[i])/avgdl)
			scores[i] += idf * tf * (k1 + 1) / (tf + norm)
		}
	}

	return scores
}
