package models

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
}

type TopicInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type TopicsResponse struct {
	Topics []TopicInfo `json:"topics"`
}

type StatsResponse struct {
	TotalRequests int64    `json:"total_requests"`
	ActiveTopics  []string `json:"active_topics"`
	Model         string   `json:"model"`
	MaxTokens     int      `json:"max_tokens"`
}
