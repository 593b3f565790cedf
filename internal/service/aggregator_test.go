package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adilgabb/commitgate/internal/backend"
	"github.com/adilgabb/commitgate/models"
)

// mockBackend implements backend.Client with overridable function fields and
// counts every call.
type mockBackend struct {
	mu           sync.Mutex
	stageCalls   int
	commitCalls  int
	stageFunc    func(ctx context.Context, ch models.Channel, sha string, data []byte) (string, error)
	commitFunc   func(ctx context.Context, ch models.Channel, message string, ops []backend.Operation) (models.CommitResult, error)
	lastOps      []backend.Operation
	lastMessage  string
	lastChannels []string
}

func (m *mockBackend) StageObject(ctx context.Context, ch models.Channel, sha string, data []byte) (string, error) {
	m.mu.Lock()
	m.stageCalls++
	m.mu.Unlock()
	if m.stageFunc != nil {
		return m.stageFunc(ctx, ch, sha, data)
	}
	return "oid-" + sha[:8], nil
}

func (m *mockBackend) SubmitCommit(ctx context.Context, ch models.Channel, message string, ops []backend.Operation) (models.CommitResult, error) {
	m.mu.Lock()
	m.commitCalls++
	m.lastOps = ops
	m.lastMessage = message
	m.lastChannels = append(m.lastChannels, ch.Name)
	m.mu.Unlock()
	if m.commitFunc != nil {
		return m.commitFunc(ctx, ch, message, ops)
	}
	return models.CommitResult{CommitID: "commit-1"}, nil
}

func (m *mockBackend) PublicURL(ch models.Channel, path string) string {
	return "https://cdn.example.com/" + ch.Repo + "/" + path
}

func preparedFile(path string, data []byte) models.PreparedFile {
	return models.PreparedFile{
		Name:     path,
		Path:     path,
		Data:     data,
		Size:     int64(len(data)),
		MimeType: "application/octet-stream",
	}
}

var aggregatorChannel = models.Channel{Name: "alpha", Token: "t", Repo: "org/alpha"}

func TestCommitAggregatorOneTransactionPerBatch(t *testing.T) {
	be := &mockBackend{}
	agg := NewCommitAggregator(be, 1024, 2, zerolog.Nop())

	files := []models.PreparedFile{
		preparedFile("a.txt", []byte("alpha")),
		preparedFile("b.txt", []byte("bravo")),
		preparedFile("c.txt", []byte("charlie")),
	}

	result, err := agg.Commit(context.Background(), aggregatorChannel, "three files", files)
	require.NoError(t, err)

	assert.Equal(t, 1, be.commitCalls, "N files must produce exactly one transaction")
	assert.Equal(t, 0, be.stageCalls, "small files are embedded, never staged")
	assert.Equal(t, "commit-1", result.CommitID)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, result.Paths)
	require.Len(t, be.lastOps, 3)
	for _, op := range be.lastOps {
		assert.NotEmpty(t, op.ContentBase64)
		assert.Empty(t, op.OID)
	}
	for _, f := range files {
		assert.Equal(t, models.FileCommitted, f.State)
	}
}

func TestCommitAggregatorStagesLargeFiles(t *testing.T) {
	be := &mockBackend{}
	agg := NewCommitAggregator(be, 4, 2, zerolog.Nop())

	files := []models.PreparedFile{
		preparedFile("small.bin", []byte("abc")),
		preparedFile("large.bin", []byte("0123456789")),
	}

	_, err := agg.Commit(context.Background(), aggregatorChannel, "mix", files)
	require.NoError(t, err)

	assert.Equal(t, 1, be.stageCalls)
	assert.Equal(t, 1, be.commitCalls)
	require.Len(t, be.lastOps, 2)
	assert.NotEmpty(t, be.lastOps[0].ContentBase64)
	assert.Empty(t, be.lastOps[0].OID)
	assert.Empty(t, be.lastOps[1].ContentBase64)
	assert.NotEmpty(t, be.lastOps[1].OID, "large file must travel by object identifier")
}

func TestCommitAggregatorDigestMismatch(t *testing.T) {
	be := &mockBackend{}
	agg := NewCommitAggregator(be, 1024, 2, zerolog.Nop())

	f := preparedFile("a.txt", []byte("alpha"))
	f.SHA256 = "deadbeef"

	_, err := agg.Commit(context.Background(), aggregatorChannel, "msg", []models.PreparedFile{f})
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, 0, be.commitCalls, "digest mismatch must fail before any backend call")
	assert.Equal(t, 0, be.stageCalls)
}

func TestCommitAggregatorAcceptsMatchingDigest(t *testing.T) {
	be := &mockBackend{}
	agg := NewCommitAggregator(be, 1024, 2, zerolog.Nop())

	data := []byte("alpha")
	sum := sha256.Sum256(data)
	f := preparedFile("a.txt", data)
	f.SHA256 = hex.EncodeToString(sum[:])

	_, err := agg.Commit(context.Background(), aggregatorChannel, "msg", []models.PreparedFile{f})
	require.NoError(t, err)
}

func TestCommitAggregatorPartialOnCommitFailure(t *testing.T) {
	be := &mockBackend{
		commitFunc: func(context.Context, models.Channel, string, []backend.Operation) (models.CommitResult, error) {
			return models.CommitResult{}, &backend.RateLimitError{RetryAfter: 30}
		},
	}
	agg := NewCommitAggregator(be, 4, 2, zerolog.Nop())

	files := []models.PreparedFile{
		preparedFile("small.bin", []byte("abc")),
		preparedFile("large.bin", []byte("0123456789")),
	}

	_, err := agg.Commit(context.Background(), aggregatorChannel, "msg", files)
	require.ErrorIs(t, err, ErrPartialCommit)

	var partial *PartialCommitError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []string{"large.bin"}, partial.Staged)

	var rl *backend.RateLimitError
	require.ErrorAs(t, err, &rl, "underlying backend failure stays reachable")
	assert.Equal(t, 30, rl.RetryAfter)
}

func TestCommitAggregatorNoPartialWithoutStagedBytes(t *testing.T) {
	be := &mockBackend{
		commitFunc: func(context.Context, models.Channel, string, []backend.Operation) (models.CommitResult, error) {
			return models.CommitResult{}, &backend.RateLimitError{RetryAfter: 10}
		},
	}
	agg := NewCommitAggregator(be, 1024, 2, zerolog.Nop())

	files := []models.PreparedFile{preparedFile("a.txt", []byte("alpha"))}

	_, err := agg.Commit(context.Background(), aggregatorChannel, "msg", files)
	require.ErrorIs(t, err, backend.ErrRateLimited)
	assert.NotErrorIs(t, err, ErrPartialCommit, "embedded-only batches leave nothing staged")
}

func TestCommitAggregatorStagingFailureReportsStagedSiblings(t *testing.T) {
	be := &mockBackend{
		stageFunc: func(_ context.Context, _ models.Channel, sha string, data []byte) (string, error) {
			if string(data) == "failfailfail" {
				return "", errors.New("staging refused")
			}
			return "oid-" + sha[:8], nil
		},
	}
	agg := NewCommitAggregator(be, 4, 1, zerolog.Nop())

	files := []models.PreparedFile{
		preparedFile("good.bin", []byte("okokokokok")),
		preparedFile("bad.bin", []byte("failfailfail")),
	}

	_, err := agg.Commit(context.Background(), aggregatorChannel, "msg", files)
	require.Error(t, err)
	assert.Equal(t, 0, be.commitCalls, "no transaction after a staging failure")

	var partial *PartialCommitError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []string{"good.bin"}, partial.Staged)
}

func TestCommitAggregatorPathsFallback(t *testing.T) {
	be := &mockBackend{
		commitFunc: func(context.Context, models.Channel, string, []backend.Operation) (models.CommitResult, error) {
			return models.CommitResult{CommitID: "c-9"}, nil
		},
	}
	agg := NewCommitAggregator(be, 1024, 2, zerolog.Nop())

	files := []models.PreparedFile{
		preparedFile("x/a.txt", []byte("a")),
		preparedFile("x/b.txt", []byte("b")),
	}

	result, err := agg.Commit(context.Background(), aggregatorChannel, "msg", files)
	require.NoError(t, err)
	assert.Equal(t, []string{"x/a.txt", "x/b.txt"}, result.Paths)
}
