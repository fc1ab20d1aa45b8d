package db

import (
	"context"
	_ "embed"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lual007/Intermediate-API---Squad-06/internal/models"
)

//go:embed schema.sql
var schema string

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// Migrate applies the embedded schema. Statements are idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, schema)
	return err
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) GetAcao(ctx context.Context, id int64) (models.Acao, error) {
	var a models.Acao
	err := s.Pool.QueryRow(ctx, `
		SELECT acao_id, event_id, descricao, agent_id, user_id, data_acao
		FROM acoes WHERE acao_id = $1
	`, id).Scan(&a.ID, &a.EventID, &a.Descricao, &a.AgentID, &a.UserID, &a.OccurredAt)
	return a, err
}

func (s *Store) InsertAnalise(ctx context.Context, tx pgx.Tx, a models.AnaliseSentimento) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO analise_sentimentos (acao_id, sentimento, score, modelo, data_analise)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING analise_id
	`, a.AcaoID, a.Sentimento, a.Score, a.Modelo, a.AnalyzedAt).Scan(&id)
	return id, err
}

// CreateAnalise inserts one analysis inside its own transaction. The unique
// constraint on acao_id keeps at most one analysis per action; a violation
// rolls back and surfaces as a pgconn error.
func (s *Store) CreateAnalise(ctx context.Context, a models.AnaliseSentimento) (int64, error) {
	var id int64
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		var err error
		id, err = s.InsertAnalise(ctx, tx, a)
		return err
	})
	return id, err
}

func (s *Store) ListAnalises(ctx context.Context) ([]models.AnaliseSentimento, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT analise_id, acao_id, sentimento, score, modelo, data_analise
		FROM analise_sentimentos
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnalises(rows)
}

func (s *Store) CountAnalises(ctx context.Context) (int64, error) {
	var n int64
	err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM analise_sentimentos`).Scan(&n)
	return n, err
}

// RecurrenceCounts groups analyses by label, highest count first. Equal counts
// are ordered lexicographically by label so the ranking is stable.
func (s *Store) RecurrenceCounts(ctx context.Context) ([]models.SentimentoRecorrente, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT sentimento, COUNT(*) AS count
		FROM analise_sentimentos
		GROUP BY sentimento
		ORDER BY count DESC, sentimento ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SentimentoRecorrente
	for rows.Next() {
		var r models.SentimentoRecorrente
		if err := rows.Scan(&r.Sentimento, &r.Count); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LowestScoreByLabels returns the lowest-score analysis whose label is in the
// given set, or pgx.ErrNoRows when none matches.
func (s *Store) LowestScoreByLabels(ctx context.Context, labels []string) (models.AnaliseSentimento, error) {
	var a models.AnaliseSentimento
	err := s.Pool.QueryRow(ctx, `
		SELECT analise_id, acao_id, sentimento, score, modelo, data_analise
		FROM analise_sentimentos
		WHERE sentimento = ANY($1)
		ORDER BY score ASC, analise_id ASC
		LIMIT 1
	`, labels).Scan(&a.ID, &a.AcaoID, &a.Sentimento, &a.Score, &a.Modelo, &a.AnalyzedAt)
	return a, err
}

func (s *Store) CountByLabel(ctx context.Context, label string) (int64, error) {
	var n int64
	err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM analise_sentimentos WHERE sentimento = $1`, label).Scan(&n)
	return n, err
}

func (s *Store) ListAnalisesByScore(ctx context.Context, min, max float64) ([]models.AnaliseSentimento, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT analise_id, acao_id, sentimento, score, modelo, data_analise
		FROM analise_sentimentos
		WHERE score >= $1 AND score <= $2
		ORDER BY score ASC
	`, min, max)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnalises(rows)
}

func (s *Store) ListAnalisesByData(ctx context.Context, start, end time.Time) ([]models.AnaliseSentimento, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT analise_id, acao_id, sentimento, score, modelo, data_analise
		FROM analise_sentimentos
		WHERE data_analise >= $1 AND data_analise <= $2
		ORDER BY data_analise ASC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnalises(rows)
}

func (s *Store) ListAnalisesByTecnico(ctx context.Context, agentID int64) ([]models.AnaliseSentimento, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT an.analise_id, an.acao_id, an.sentimento, an.score, an.modelo, an.data_analise
		FROM analise_sentimentos an
		JOIN acoes ac ON ac.acao_id = an.acao_id
		WHERE ac.agent_id = $1
	`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnalises(rows)
}

func (s *Store) ListAtendimentos(ctx context.Context) ([]models.Atendimento, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT e.descricao, an.score, an.sentimento, an.sentimento, ag.nome
		FROM events e
		JOIN acoes ac ON ac.event_id = e.event_id
		JOIN analise_sentimentos an ON an.acao_id = ac.acao_id
		JOIN agents ag ON ag.agent_id = ac.agent_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Atendimento
	for rows.Next() {
		var a models.Atendimento
		if err := rows.Scan(&a.Conversa, &a.Score, &a.Termo, &a.Sentimento, &a.Atendente); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetTecnicoResumo returns the rollup row for one agent, or pgx.ErrNoRows when
// the agent has no analyzed action.
func (s *Store) GetTecnicoResumo(ctx context.Context, agentID int64) (models.TecnicoResumo, error) {
	var r models.TecnicoResumo
	err := s.Pool.QueryRow(ctx, `
		SELECT ag.nome, an.sentimento, an.sentimento, an.score
		FROM agents ag
		JOIN acoes ac ON ac.agent_id = ag.agent_id
		JOIN analise_sentimentos an ON an.acao_id = ac.acao_id
		WHERE ag.agent_id = $1
		LIMIT 1
	`, agentID).Scan(&r.Atendente, &r.Sentimento, &r.Termo, &r.Score)
	return r, err
}

func (s *Store) GetClienteResumo(ctx context.Context, userID int64) (models.ClienteResumo, error) {
	var r models.ClienteResumo
	err := s.Pool.QueryRow(ctx, `
		SELECT u.name, an.sentimento, an.sentimento, an.score
		FROM users u
		JOIN acoes ac ON ac.user_id = u.user_id
		JOIN analise_sentimentos an ON an.acao_id = ac.acao_id
		WHERE u.user_id = $1
		LIMIT 1
	`, userID).Scan(&r.Cliente, &r.Sentimento, &r.Termo, &r.Score)
	return r, err
}

func (s *Store) ListAgents(ctx context.Context) ([]models.Agent, error) {
	rows, err := s.Pool.Query(ctx, `SELECT agent_id, nome, email, username, score FROM agents ORDER BY agent_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Agent
	for rows.Next() {
		var a models.Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Username, &a.Score); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.Pool.Query(ctx, `SELECT user_id, name, email, username, score FROM users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.Score); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// DeleteAnalise removes one analysis. Returns pgx.ErrNoRows when the id does
// not exist. No cascading effects.
func (s *Store) DeleteAnalise(ctx context.Context, id int64) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM analise_sentimentos WHERE analise_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAnalises(rows pgx.Rows) ([]models.AnaliseSentimento, error) {
	var out []models.AnaliseSentimento
	for rows.Next() {
		var a models.AnaliseSentimento
		if err := rows.Scan(&a.ID, &a.AcaoID, &a.Sentimento, &a.Score, &a.Modelo, &a.AnalyzedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
