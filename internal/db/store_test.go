package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Lual007/Intermediate-API---Squad-06/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	store, err := New(context.Background(), url)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	t.Cleanup(store.Close)
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestAnaliseLifecycleIntegration(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	var eventID int64
	err := store.Pool.QueryRow(ctx, `
		INSERT INTO events (descricao, data_abertura, status_id) VALUES ($1, NOW(), 1) RETURNING event_id
	`, "chamado de teste").Scan(&eventID)
	if err != nil {
		t.Fatalf("insert event: %v", err)
	}

	var acaoID int64
	err = store.Pool.QueryRow(ctx, `
		INSERT INTO acoes (event_id, descricao) VALUES ($1, $2) RETURNING acao_id
	`, eventID, "cliente relatou problema").Scan(&acaoID)
	if err != nil {
		t.Fatalf("insert acao: %v", err)
	}

	analise := models.AnaliseSentimento{
		AcaoID:     acaoID,
		Sentimento: "raiva",
		Score:      1.0,
		Modelo:     "Emollama-7b",
		AnalyzedAt: time.Now().UTC(),
	}
	id, err := store.CreateAnalise(ctx, analise)
	if err != nil {
		t.Fatalf("create analise: %v", err)
	}

	// unique constraint: one analysis per action
	if _, err := store.CreateAnalise(ctx, analise); err == nil {
		t.Fatal("expected duplicate analise to fail")
	} else {
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
			t.Fatalf("expected unique violation, got %v", err)
		}
	}

	counts, err := store.RecurrenceCounts(ctx)
	if err != nil {
		t.Fatalf("recurrence counts: %v", err)
	}
	var total int64
	for _, c := range counts {
		total += c.Count
	}
	all, err := store.CountAnalises(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != all {
		t.Fatalf("sum of counts %d != total %d", total, all)
	}

	if err := store.DeleteAnalise(ctx, id); err != nil {
		t.Fatalf("delete analise: %v", err)
	}
	if err := store.DeleteAnalise(ctx, id); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected ErrNoRows on second delete, got %v", err)
	}

	if _, err := store.Pool.Exec(ctx, `DELETE FROM acoes WHERE acao_id = $1`, acaoID); err != nil {
		t.Fatalf("cleanup acao: %v", err)
	}
	if _, err := store.Pool.Exec(ctx, `DELETE FROM events WHERE event_id = $1`, eventID); err != nil {
		t.Fatalf("cleanup event: %v", err)
	}
}
