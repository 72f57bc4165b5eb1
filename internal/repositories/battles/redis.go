package battles

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-battle/internal/redis"
)

const battleKeyPrefix = "battle:"

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// RedisConfig contains configuration for the Redis battle repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
	// TTL expires idle battles; zero keeps them forever
	TTL time.Duration
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

// NewRedis creates a new Redis-backed battle repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
		ttl:    cfg.TTL,
	}, nil
}

func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateRecord(input); err != nil {
		return nil, err
	}

	rec := copyRecord(input.Record)
	rec.UpdatedAt = r.clock.Now().UTC()

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal battle %s", rec.ID)
	}

	if err := r.client.Set(ctx, battleKeyPrefix+rec.ID, data, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save battle %s", rec.ID)
	}

	slog.Debug("Battle saved",
		"battle_id", rec.ID,
		"turn", rec.Turn,
		"bytes", len(data),
	)
	return &SaveOutput{Record: rec}, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateID(input.BattleID); err != nil {
		return nil, err
	}

	result, err := r.client.Get(ctx, battleKeyPrefix+input.BattleID).Bytes()
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, errors.NotFoundf("battle %s not found", input.BattleID)
		}
		return nil, errors.Wrapf(err, "failed to get battle %s", input.BattleID)
	}

	var rec Record
	if err := json.Unmarshal(result, &rec); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataIntegrity, "failed to unmarshal battle record")
	}
	return &GetOutput{Record: &rec}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateID(input.BattleID); err != nil {
		return nil, err
	}

	n, err := r.client.Del(ctx, battleKeyPrefix+input.BattleID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete battle %s", input.BattleID)
	}
	if n == 0 {
		return nil, errors.NotFoundf("battle %s not found", input.BattleID)
	}
	return &DeleteOutput{}, nil
}
