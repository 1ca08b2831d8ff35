package news

// Story is one curated news item.
type Story struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	TimeAgo  string `json:"timeAgo"`
	ImageURL string `json:"imageUrl"`
}

// Feed is the response served to clients.
type Feed struct {
	Stories   []Story `json:"news"`
	FromCache bool    `json:"fromCache"`
}

// chatRequest is the Perplexity wire format.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
