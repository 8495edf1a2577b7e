package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/dinerozz/tabsnoop-backend/config"
	"github.com/dinerozz/tabsnoop-backend/internal/entity"
	"github.com/redis/go-redis/v9"
)

const maxWatchAttempts = 3

type redisDomainRecordRepository struct {
	client *redis.Client
	key    string
}

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("❌ Failed to connect to Redis: %v", err)
		client.Close()
		return nil, err
	}

	log.Printf("✅ Connected to Redis at %s:%s", cfg.Host, cfg.Port)
	return client, nil
}

// NewRedisDomainRecordRepository keeps the whole mapping in one hash: field
// is the domain, value the JSON encoded DomainRecord. Clearing is a single DEL.
func NewRedisDomainRecordRepository(client *redis.Client, key string) DomainRecordRepository {
	return &redisDomainRecordRepository{client: client, key: key}
}

func (r *redisDomainRecordRepository) GetOrDefault(ctx context.Context, domain string) (*entity.DomainRecord, error) {
	return r.get(ctx, r.client, domain)
}

func (r *redisDomainRecordRepository) GetAll(ctx context.Context) (map[string]entity.DomainRecord, error) {
	values, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get domain records: %w", err)
	}

	records := make(map[string]entity.DomainRecord, len(values))
	for domain, raw := range values {
		record, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode record for %s: %w", domain, err)
		}
		records[domain] = *record
	}

	return records, nil
}

// AppendVisit uses WATCH/MULTI so a concurrent writer aborts the transaction
// rather than overwriting it.
func (r *redisDomainRecordRepository) AppendVisit(ctx context.Context, domain string, visit entity.VisitInterval) (*entity.DomainRecord, error) {
	var stored *entity.DomainRecord

	txf := func(tx *redis.Tx) error {
		record, err := r.get(ctx, tx, domain)
		if err != nil {
			return err
		}
		record.AddVisit(visit)

		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal value: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, r.key, domain, payload)
			return nil
		})
		if err != nil {
			return err
		}

		stored = record
		return nil
	}

	var err error
	for attempt := 0; attempt < maxWatchAttempts; attempt++ {
		err = r.client.Watch(ctx, txf, r.key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to append visit: %w", err)
	}

	return stored, nil
}

func (r *redisDomainRecordRepository) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

func (r *redisDomainRecordRepository) get(ctx context.Context, c redis.Cmdable, domain string) (*entity.DomainRecord, error) {
	raw, err := c.HGet(ctx, r.key, domain).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity.NewDomainRecord(), nil
		}
		return nil, fmt.Errorf("failed to get hash value: %w", err)
	}

	return decodeRecord(raw)
}

func decodeRecord(raw string) (*entity.DomainRecord, error) {
	record := entity.NewDomainRecord()
	if err := json.Unmarshal([]byte(raw), record); err != nil {
		return nil, err
	}
	if record.Visits == nil {
		record.Visits = []entity.VisitInterval{}
	}
	return record, nil
}
