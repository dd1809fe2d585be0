package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RunPublisher announces completed season runs on a Redis stream so
// downstream report generators can re-render without polling the tables.
type RunPublisher struct {
	client *redis.Client
}

// NewRunPublisher creates a new Redis stream publisher.
func NewRunPublisher(redisURL string) (*RunPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RunPublisher{client: client}, nil
}

// Close closes the Redis connection.
func (rp *RunPublisher) Close() error {
	return rp.client.Close()
}

// RunCompleted is the payload published after a successful season run.
type RunCompleted struct {
	SeasonYear  int    `json:"season_year"`
	LeagueID    int    `json:"league_id"`
	LedgerRows  int    `json:"ledger_rows"`
	BucketRows  int    `json:"bucket_rows"`
	SeriesRows  int    `json:"series_rows"`
	RowsSkipped int    `json:"rows_skipped"`
	FinishedAt  string `json:"finished_at"`
}

// PublishRunCompleted appends one run-completed event to the stream.
func (rp *RunPublisher) PublishRunCompleted(ctx context.Context, event RunCompleted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: "pennant.runs.completed",
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
