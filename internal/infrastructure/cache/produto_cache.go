package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/tu-usuario/pdv-pro/internal/application/dto"
)

// ProdutoCache cacheia o resultado da busca de produtos do PDV.
// As leituras transacionais (FOR UPDATE) nunca passam por aqui: o cache serve
// só o modal de busca, onde resposta levemente defasada é aceitável.
type ProdutoCache interface {
	Get(ctx context.Context, chave string) ([]dto.ProdutoResponse, bool, error)
	Set(ctx context.Context, chave string, produtos []dto.ProdutoResponse, ttl time.Duration) error
	Close() error
}

// RedisProdutoCache implementa o cache sobre Redis.
type RedisProdutoCache struct {
	client *redis.Client
}

// NewRedisProdutoCache conecta no Redis com as credenciais dadas.
func NewRedisProdutoCache(addr, password string, db int) *RedisProdutoCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisProdutoCache{client: client}
}

// Ping verifica a conexão.
func (c *RedisProdutoCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close encerra o cliente.
func (c *RedisProdutoCache) Close() error {
	return c.client.Close()
}

// Get devolve a lista cacheada (found=false em miss).
func (c *RedisProdutoCache) Get(ctx context.Context, chave string) ([]dto.ProdutoResponse, bool, error) {
	val, err := c.client.Get(ctx, chave).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var produtos []dto.ProdutoResponse
	if err := json.Unmarshal([]byte(val), &produtos); err != nil {
		return nil, false, err
	}
	return produtos, true, nil
}

// Set grava a lista com o TTL dado.
func (c *RedisProdutoCache) Set(ctx context.Context, chave string, produtos []dto.ProdutoResponse, ttl time.Duration) error {
	if len(produtos) == 0 {
		return nil
	}
	payload, err := json.Marshal(produtos)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, chave, payload, ttl).Err()
}

// NoopProdutoCache desativa o cache (REDIS_ADDR vazio).
type NoopProdutoCache struct{}

func (NoopProdutoCache) Get(ctx context.Context, chave string) ([]dto.ProdutoResponse, bool, error) {
	return nil, false, nil
}

func (NoopProdutoCache) Set(ctx context.Context, chave string, produtos []dto.ProdutoResponse, ttl time.Duration) error {
	return nil
}

func (NoopProdutoCache) Close() error { return nil }
