package vector

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/askdocs/internal/domain"
)

// Field names inside the per-document hash.
const (
	fieldTitle   = "title"
	fieldContent = "content"
	fieldURL     = "url"
	fieldSpace   = "space"
	fieldVector  = "vector"
	// scoreField is the auto-generated KNN distance field for fieldVector.
	scoreField = "__vector_score"
)

// Config holds connection and index settings for the Redis vector index.
type Config struct {
	Addrs      []string
	Password   string
	KeyPrefix  string
	IndexName  string
	Dimensions int
}

// Repo is the vector-similarity capability backed by Redis FT.SEARCH.
// It owns the HNSW index over ingested document embeddings and maps raw
// hits into the uniform search-result shape.
type Repo struct {
	client rueidis.Client
	cfg    Config
}

// New connects to Redis and returns a vector repository.
func New(cfg Config) (*Repo, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Password:     cfg.Password,
		DisableCache: true,
		AlwaysRESP2:  true, // FT.SEARCH result parsing expects RESP2 array format
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &Repo{client: client, cfg: cfg}, nil
}

// NewWithClient wires an existing client, used by tests.
func NewWithClient(client rueidis.Client, cfg Config) *Repo {
	return &Repo{client: client, cfg: cfg}
}

// Ping checks connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	cmd := r.client.B().Ping().Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (r *Repo) Close() {
	r.client.Close()
}

// WaitForReady polls Ping until the index backend responds or the timeout expires.
func (r *Repo) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for vector index: %w", ctx.Err())
		case <-ticker.C:
			if err := r.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// EnsureIndex creates the HNSW index over document hashes if it does not
// exist yet. An already-existing index is not an error.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	args := []string{
		r.cfg.IndexName,
		"ON", "HASH",
		"PREFIX", "1", r.cfg.KeyPrefix,
		"SCHEMA",
		fieldTitle, "TEXT",
		fieldSpace, "TAG",
		fieldVector, "VECTOR", "HNSW", "6",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(r.cfg.Dimensions),
		"DISTANCE_METRIC", "COSINE",
	}
	cmd := r.client.B().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Upsert stores a document and its embedding under the index prefix,
// fully replacing any previous entry for the same id.
func (r *Repo) Upsert(ctx context.Context, doc domain.Document, vec []float32) error {
	if len(vec) != r.cfg.Dimensions {
		return fmt.Errorf("vector has %d dimensions, index expects %d", len(vec), r.cfg.Dimensions)
	}
	cmd := r.client.B().Hset().Key(r.key(doc.ID)).FieldValue().
		FieldValue(fieldTitle, doc.Title).
		FieldValue(fieldContent, doc.Content).
		FieldValue(fieldURL, doc.URL).
		FieldValue(fieldSpace, doc.SpaceKey).
		FieldValue(fieldVector, vectorToBytes(vec)).
		Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("upsert %s: %w", doc.ID, err)
	}
	return nil
}

// Delete removes a document from the index.
func (r *Repo) Delete(ctx context.Context, id string) error {
	cmd := r.client.B().Del().Key(r.key(id)).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

// Search runs a KNN query and returns hits with similarity at or above
// threshold, ordered by descending similarity. Similarity is
// 1 - cosine distance, clamped to [0,1].
func (r *Repo) Search(ctx context.Context, vec []float32, limit int, threshold float64) ([]domain.SearchResult, error) {
	if len(vec) == 0 {
		return nil, fmt.Errorf("vector is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	query := fmt.Sprintf("*=>[KNN %d @%s $BLOB]", limit, fieldVector)
	args := []string{
		r.cfg.IndexName, query,
		"RETURN", "4", fieldTitle, fieldContent, fieldURL, scoreField,
		"SORTBY", scoreField,
		"PARAMS", "2", "BLOB", vectorToBytes(vec),
		"DIALECT", "2",
	}
	cmd := r.client.B().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := r.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	return r.parseHits(raw, threshold)
}

// parseHits converts a RESP2 FT.SEARCH reply into search results.
// Reply layout is 2-stride: [total, key1, fields1, key2, fields2, ...].
func (r *Repo) parseHits(raw []rueidis.RedisMessage, threshold float64) ([]domain.SearchResult, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	results := make([]domain.SearchResult, 0, total)
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		fieldMsgs, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}
		fields := parseFieldPairs(fieldMsgs)

		similarity := 0.0
		if distStr, ok := fields[scoreField]; ok {
			if dist, err := strconv.ParseFloat(distStr, 64); err == nil {
				similarity = math.Max(0, 1.0-dist)
			}
		}
		if similarity < threshold {
			continue
		}

		results = append(results, domain.SearchResult{
			ID:         strings.TrimPrefix(key, r.cfg.KeyPrefix),
			Title:      fields[fieldTitle],
			Content:    fields[fieldContent],
			URL:        fields[fieldURL],
			Similarity: similarity,
		})
	}
	return results, nil
}

func (r *Repo) key(id string) string {
	return r.cfg.KeyPrefix + id
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// vectorToBytes packs float32s as little-endian bytes for the VECTOR field.
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// isRedisErr checks if err is a Redis server error containing substr (case-insensitive).
func isRedisErr(err error, substr string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), strings.ToLower(substr))
}
