package models

import "time"

type User struct {
	ID       int64   `json:"user_id"`
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
	Score    float64 `json:"score"`
}

type Agent struct {
	ID       int64   `json:"agent_id"`
	Name     string  `json:"nome"`
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
	Score    float64 `json:"score"`
}

type Event struct {
	ID        int64      `json:"event_id"`
	Descricao string     `json:"descricao"`
	OpenedAt  time.Time  `json:"data_abertura"`
	StatusID  int        `json:"status_id"`
	ClosedAt  *time.Time `json:"data_baixa,omitempty"`
}

type Acao struct {
	ID         int64      `json:"acao_id"`
	EventID    int64      `json:"event_id"`
	Descricao  string     `json:"descricao"`
	AgentID    *int64     `json:"agent_id,omitempty"`
	UserID     *int64     `json:"user_id,omitempty"`
	OccurredAt *time.Time `json:"data_acao,omitempty"`
}

type AnaliseSentimento struct {
	ID         int64     `json:"analise_id"`
	AcaoID     int64     `json:"acao_id"`
	Sentimento string    `json:"sentimento"`
	Score      float64   `json:"score"`
	Modelo     string    `json:"modelo"`
	AnalyzedAt time.Time `json:"data_analise"`
}

// SentimentoRecorrente is one row of the grouped recurrence ranking.
type SentimentoRecorrente struct {
	Sentimento string `json:"sentimento"`
	Count      int64  `json:"count"`
}

// SentimentoFrequente is the top entry of the recurrence ranking plus its
// share of all analyses. Total carries the denominator so an empty store is
// distinguishable from a single-label store.
type SentimentoFrequente struct {
	Sentimento  string  `json:"sentimento"`
	Count       int64   `json:"count"`
	Total       int64   `json:"total"`
	Porcentagem float64 `json:"porcentagem"`
}

// SentimentoNegativo is the lowest-score analysis among the negative labels.
type SentimentoNegativo struct {
	Sentimento  string  `json:"sentimento"`
	Score       float64 `json:"score"`
	Porcentagem float64 `json:"porcentagem"`
}

// Atendimento is a flattened row joining event, analysis and agent.
type Atendimento struct {
	Conversa   string  `json:"conversa"`
	Score      float64 `json:"score"`
	Termo      string  `json:"termo"`
	Sentimento string  `json:"sentimento_mais"`
	Atendente  string  `json:"atendente"`
}

// TecnicoResumo is the per-agent rollup row.
type TecnicoResumo struct {
	Atendente  string  `json:"atendente"`
	Sentimento string  `json:"sentimento"`
	Termo      string  `json:"termo"`
	Score      float64 `json:"score"`
}

// ClienteResumo is the per-customer rollup row.
type ClienteResumo struct {
	Cliente    string  `json:"cliente"`
	Sentimento string  `json:"sentimento"`
	Termo      string  `json:"termo"`
	Score      float64 `json:"score"`
}
