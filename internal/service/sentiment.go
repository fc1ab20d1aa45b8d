package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Lual007/Intermediate-API---Squad-06/internal/analyzer"
	"github.com/Lual007/Intermediate-API---Squad-06/internal/models"
	"github.com/Lual007/Intermediate-API---Squad-06/internal/normalize"
)

// DefaultModelo identifies the sentiment model behind the analysis endpoint.
const DefaultModelo = "Emollama-7b"

// NegativeLabels is the fixed set of labels counted as negative, in stored
// (normalized) form.
var NegativeLabels = []string{"raiva", "frustracao", "confusao", "urgencia"}

// Store is the persistence surface the sentiment pipeline needs.
type Store interface {
	GetAcao(ctx context.Context, id int64) (models.Acao, error)
	CreateAnalise(ctx context.Context, a models.AnaliseSentimento) (int64, error)
	ListAnalises(ctx context.Context) ([]models.AnaliseSentimento, error)
	CountAnalises(ctx context.Context) (int64, error)
	RecurrenceCounts(ctx context.Context) ([]models.SentimentoRecorrente, error)
	LowestScoreByLabels(ctx context.Context, labels []string) (models.AnaliseSentimento, error)
	CountByLabel(ctx context.Context, label string) (int64, error)
	ListAnalisesByScore(ctx context.Context, min, max float64) ([]models.AnaliseSentimento, error)
	ListAnalisesByData(ctx context.Context, start, end time.Time) ([]models.AnaliseSentimento, error)
	ListAnalisesByTecnico(ctx context.Context, agentID int64) ([]models.AnaliseSentimento, error)
	ListAtendimentos(ctx context.Context) ([]models.Atendimento, error)
	GetTecnicoResumo(ctx context.Context, agentID int64) (models.TecnicoResumo, error)
	GetClienteResumo(ctx context.Context, userID int64) (models.ClienteResumo, error)
	ListAgents(ctx context.Context) ([]models.Agent, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteAnalise(ctx context.Context, id int64) error
}

type SentimentService struct {
	Store    Store
	Analyzer analyzer.Analyzer
	Modelo   string
	Logger   zerolog.Logger
}

func (s *SentimentService) modelo() string {
	if s.Modelo != "" {
		return s.Modelo
	}
	return DefaultModelo
}

// Submit runs the full pipeline for one action: existence check, description
// check, external analysis, normalization, and a transactional insert. The
// row is only written after a successful normalized label, so a failure at
// any step leaves no partial state.
func (s *SentimentService) Submit(ctx context.Context, acaoID int64, descricao string) (string, error) {
	acao, err := s.Store.GetAcao(ctx, acaoID)
	if err != nil {
		return "", classifyStoreErr(err, "Ação não encontrada")
	}

	if strings.TrimSpace(descricao) == "" {
		return "", newError(KindInvalidInput, "Ação não possui descrição", nil)
	}

	raw, err := s.Analyzer.Analyze(ctx, descricao)
	if err != nil {
		switch {
		case errors.Is(err, analyzer.ErrUnavailable):
			return "", newError(KindServiceUnavailable, "Erro ao conectar com o serviço de análise", err)
		case errors.Is(err, analyzer.ErrBadResponse):
			return "", newError(KindBadGateway, "Resposta inválida do serviço de análise", err)
		default:
			return "", newError(KindUnexpected, "falha na análise de sentimento", err)
		}
	}

	label := normalize.Label(raw)
	if label == "" {
		return "", newError(KindBadGateway, "Resposta inválida do serviço de análise", nil)
	}

	analise := models.AnaliseSentimento{
		AcaoID:     acao.ID,
		Sentimento: label,
		Score:      1.0,
		Modelo:     s.modelo(),
		AnalyzedAt: time.Now().UTC(),
	}
	if _, err := s.Store.CreateAnalise(ctx, analise); err != nil {
		return "", classifyStoreErr(err, "Ação não encontrada")
	}

	s.Logger.Info().Int64("acao_id", acao.ID).Str("sentimento", label).Msg("sentiment stored")
	return label, nil
}

func (s *SentimentService) ListAnalises(ctx context.Context) ([]models.AnaliseSentimento, error) {
	out, err := s.Store.ListAnalises(ctx)
	if err != nil {
		return nil, classifyStoreErr(err, "")
	}
	return out, nil
}

func (s *SentimentService) Quantidade(ctx context.Context) (int64, error) {
	n, err := s.Store.CountAnalises(ctx)
	if err != nil {
		return 0, classifyStoreErr(err, "")
	}
	return n, nil
}

func (s *SentimentService) Recorrentes(ctx context.Context) ([]models.SentimentoRecorrente, error) {
	out, err := s.Store.RecurrenceCounts(ctx)
	if err != nil {
		return nil, classifyStoreErr(err, "")
	}
	return out, nil
}

// MaisFrequente returns the top recurrence entry and its share of all
// analyses. An empty store yields Total == 0, not an error.
func (s *SentimentService) MaisFrequente(ctx context.Context) (models.SentimentoFrequente, error) {
	counts, err := s.Store.RecurrenceCounts(ctx)
	if err != nil {
		return models.SentimentoFrequente{}, classifyStoreErr(err, "")
	}
	if len(counts) == 0 {
		return models.SentimentoFrequente{}, nil
	}
	var total int64
	for _, c := range counts {
		total += c.Count
	}
	top := counts[0]
	return models.SentimentoFrequente{
		Sentimento:  top.Sentimento,
		Count:       top.Count,
		Total:       total,
		Porcentagem: percent(top.Count, total),
	}, nil
}

// MaisNegativo returns the lowest-score analysis among the negative labels,
// plus the share that label represents of all analyses. Nil when no analysis
// matches.
func (s *SentimentService) MaisNegativo(ctx context.Context) (*models.SentimentoNegativo, error) {
	lowest, err := s.Store.LowestScoreByLabels(ctx, NegativeLabels)
	if err != nil {
		storeErr := classifyStoreErr(err, "")
		if storeErr.Kind == KindNotFound {
			return nil, nil
		}
		return nil, storeErr
	}

	labelCount, err := s.Store.CountByLabel(ctx, lowest.Sentimento)
	if err != nil {
		return nil, classifyStoreErr(err, "")
	}
	total, err := s.Store.CountAnalises(ctx)
	if err != nil {
		return nil, classifyStoreErr(err, "")
	}

	return &models.SentimentoNegativo{
		Sentimento:  lowest.Sentimento,
		Score:       lowest.Score,
		Porcentagem: percent(labelCount, total),
	}, nil
}

func (s *SentimentService) PorScore(ctx context.Context, min, max float64) ([]models.AnaliseSentimento, error) {
	if min > max {
		return nil, newError(KindInvalidInput, "intervalo de score inválido", nil)
	}
	out, err := s.Store.ListAnalisesByScore(ctx, min, max)
	if err != nil {
		return nil, classifyStoreErr(err, "")
	}
	return out, nil
}

func (s *SentimentService) PorData(ctx context.Context, start, end time.Time) ([]models.AnaliseSentimento, error) {
	if end.Before(start) {
		return nil, newError(KindInvalidInput, "intervalo de datas inválido", nil)
	}
	out, err := s.Store.ListAnalisesByData(ctx, start, end)
	if err != nil {
		return nil, classifyStoreErr(err, "")
	}
	return out, nil
}

func (s *SentimentService) PorTecnico(ctx context.Context, agentID int64) ([]models.AnaliseSentimento, error) {
	out, err := s.Store.ListAnalisesByTecnico(ctx, agentID)
	if err != nil {
		return nil, classifyStoreErr(err, "")
	}
	return out, nil
}

func (s *SentimentService) Atendimentos(ctx context.Context) ([]models.Atendimento, error) {
	out, err := s.Store.ListAtendimentos(ctx)
	if err != nil {
		return nil, classifyStoreErr(err, "")
	}
	return out, nil
}

func (s *SentimentService) Tecnico(ctx context.Context, agentID int64) (models.TecnicoResumo, error) {
	r, err := s.Store.GetTecnicoResumo(ctx, agentID)
	if err != nil {
		return models.TecnicoResumo{}, classifyStoreErr(err, "Técnico não encontrado")
	}
	return r, nil
}

func (s *SentimentService) Cliente(ctx context.Context, userID int64) (models.ClienteResumo, error) {
	r, err := s.Store.GetClienteResumo(ctx, userID)
	if err != nil {
		return models.ClienteResumo{}, classifyStoreErr(err, "Cliente não encontrado")
	}
	return r, nil
}

func (s *SentimentService) Tecnicos(ctx context.Context) ([]models.Agent, error) {
	out, err := s.Store.ListAgents(ctx)
	if err != nil {
		return nil, classifyStoreErr(err, "")
	}
	return out, nil
}

func (s *SentimentService) Clientes(ctx context.Context) ([]models.User, error) {
	out, err := s.Store.ListUsers(ctx)
	if err != nil {
		return nil, classifyStoreErr(err, "")
	}
	return out, nil
}

func (s *SentimentService) Delete(ctx context.Context, id int64) error {
	if err := s.Store.DeleteAnalise(ctx, id); err != nil {
		return classifyStoreErr(err, "Sentimento não encontrado")
	}
	s.Logger.Info().Int64("analise_id", id).Msg("sentiment deleted")
	return nil
}

func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(100*float64(part)/float64(total)*100) / 100
}
