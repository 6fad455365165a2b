package metrics

// Metrics holds model API usage for a time period.
type Metrics struct {
	embeddingRequests  int
	generationRequests int
	tokens             int
}

// New creates a Metrics snapshot.
func New(embeddingRequests, generationRequests, tokens int) Metrics {
	return Metrics{
		embeddingRequests:  embeddingRequests,
		generationRequests: generationRequests,
		tokens:             tokens,
	}
}

// EmbeddingRequests returns the number of embedding API calls.
func (m Metrics) EmbeddingRequests() int { return m.embeddingRequests }

// GenerationRequests returns the number of generation and chat API calls.
func (m Metrics) GenerationRequests() int { return m.generationRequests }

// Tokens returns the total tokens consumed.
func (m Metrics) Tokens() int { return m.tokens }
