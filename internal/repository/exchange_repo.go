package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"studyai-backend/internal/models"
)

type ExchangeRepo struct {
	pool *pgxpool.Pool
}

func NewExchangeRepo(pool *pgxpool.Pool) *ExchangeRepo {
	return &ExchangeRepo{pool: pool}
}

func (r *ExchangeRepo) Create(ctx context.Context, ex *models.Exchange) error {
	query := `
		INSERT INTO chat_exchanges
			(id, request_id, provider, topic, model, temperature, max_tokens, tokens_used, status, latency_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		ex.ID, ex.RequestID, ex.Provider, ex.Topic, ex.Model, ex.Temperature,
		ex.MaxTokens, ex.TokensUsed, ex.Status, ex.LatencyMS, ex.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving exchange %s: %w", ex.ID, err)
	}
	return nil
}
