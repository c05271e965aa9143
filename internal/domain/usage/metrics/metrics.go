package metrics

// Metrics holds answer generation usage for a time period.
type Metrics struct {
	answerRequests int
	tokens         int
}

// New creates a Metrics snapshot.
func New(requests, tokens int) Metrics {
	return Metrics{answerRequests: requests, tokens: tokens}
}

// AnswerRequests returns the number of completion calls.
func (m Metrics) AnswerRequests() int { return m.answerRequests }

// Tokens returns the total tokens consumed.
func (m Metrics) Tokens() int { return m.tokens }
