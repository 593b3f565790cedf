package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adilgabb/commitgate/internal/backend"
	"github.com/adilgabb/commitgate/internal/config"
	"github.com/adilgabb/commitgate/internal/logger"
	"github.com/adilgabb/commitgate/internal/service"
	"github.com/adilgabb/commitgate/internal/utils"
	"github.com/adilgabb/commitgate/models"
)

type mockUploadService struct {
	uploadFunc func(ctx context.Context, req models.BatchRequest, uploaderIP string) (*models.UploadResponse, error)
	lastIP     string
}

func (m *mockUploadService) Upload(ctx context.Context, req models.BatchRequest, uploaderIP string) (*models.UploadResponse, error) {
	m.lastIP = uploaderIP
	return m.uploadFunc(ctx, req, uploaderIP)
}

type mockRecordService struct {
	listFunc func(ctx context.Context, channelName, dir string) (*models.ListResponse, error)
}

func (m *mockRecordService) List(ctx context.Context, channelName, dir string) (*models.ListResponse, error) {
	return m.listFunc(ctx, channelName, dir)
}

func newTestHandler(upload *mockUploadService, records *mockRecordService, app config.App) *Handler {
	cfg := &config.StructuredConfig{
		App:    app,
		Limits: config.Limits{MaxTotalBytes: 4 << 20},
	}
	services := &service.Services{}
	if upload != nil {
		services.Upload = upload
	}
	if records != nil {
		services.Records = records
	}
	return NewHandler(services, cfg, logger.Nop())
}

func postUpload(t *testing.T, h *Handler, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestUploadEndpointSuccess(t *testing.T) {
	upload := &mockUploadService{
		uploadFunc: func(_ context.Context, req models.BatchRequest, _ string) (*models.UploadResponse, error) {
			return &models.UploadResponse{
				Success:     true,
				RequestID:   req.RequestID,
				CommitID:    "c-1",
				ChannelName: "alpha",
				Repo:        "org/alpha",
				Files: []models.UploadedFile{
					{Name: "a.txt", Src: "https://cdn/org/alpha/a.txt", FullID: "alpha:a.txt"},
				},
			}, nil
		},
	}
	h := newTestHandler(upload, nil, config.App{})

	rec := postUpload(t, h, models.BatchRequest{
		RequestID: "req-1",
		Files:     []models.FileInput{{Name: "a.txt", ContentBase64: "YWxwaGE="}},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp models.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "c-1", resp.CommitID)
	require.Len(t, resp.Files, 1)
	assert.Equal(t, "alpha:a.txt", resp.Files[0].FullID)
}

func TestUploadEndpointMalformedBody(t *testing.T) {
	h := newTestHandler(&mockUploadService{}, nil, config.App{})

	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeError(t, rec).Code)
}

func TestUploadEndpointErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid request", service.ErrInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST"},
		{"channel not found", service.ErrChannelNotFound, http.StatusBadRequest, "CHANNEL_NOT_FOUND"},
		{"backend auth", backend.ErrAuth, http.StatusUnauthorized, "AUTH_ERROR"},
		{"rate limit", &backend.RateLimitError{RetryAfter: 42}, http.StatusTooManyRequests, "RATE_LIMIT"},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upload := &mockUploadService{
				uploadFunc: func(context.Context, models.BatchRequest, string) (*models.UploadResponse, error) {
					return nil, tt.err
				},
			}
			h := newTestHandler(upload, nil, config.App{})

			rec := postUpload(t, h, models.BatchRequest{
				Files: []models.FileInput{{Name: "a.txt", ContentBase64: "YWxwaGE="}},
			})

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestUploadEndpointRateLimitDetails(t *testing.T) {
	upload := &mockUploadService{
		uploadFunc: func(context.Context, models.BatchRequest, string) (*models.UploadResponse, error) {
			return nil, &backend.RateLimitError{RetryAfter: 42}
		},
	}
	h := newTestHandler(upload, nil, config.App{})

	rec := postUpload(t, h, models.BatchRequest{
		Files: []models.FileInput{{Name: "a.txt", ContentBase64: "YWxwaGE="}},
	})

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
	assert.Equal(t, 42, decodeError(t, rec).RetryAfter)
}

func TestUploadEndpointPartialCommit(t *testing.T) {
	upload := &mockUploadService{
		uploadFunc: func(context.Context, models.BatchRequest, string) (*models.UploadResponse, error) {
			return nil, &service.PartialCommitError{
				Staged: []string{"docs/big.bin"},
				Err:    backend.ErrBackend,
			}
		},
	}
	h := newTestHandler(upload, nil, config.App{})

	rec := postUpload(t, h, models.BatchRequest{
		Files: []models.FileInput{{Name: "big.bin", ContentBase64: "YWxwaGE="}},
	})

	require.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "PARTIAL_UPLOAD_NOT_COMMITTED", resp.Code)
	assert.Equal(t, []string{"docs/big.bin"}, resp.StagedFiles)
}

func TestUploadEndpointInternalErrorHidesDetails(t *testing.T) {
	upload := &mockUploadService{
		uploadFunc: func(context.Context, models.BatchRequest, string) (*models.UploadResponse, error) {
			return nil, context.DeadlineExceeded
		},
	}
	h := newTestHandler(upload, nil, config.App{})

	rec := postUpload(t, h, models.BatchRequest{
		Files: []models.FileInput{{Name: "a.txt", ContentBase64: "YWxwaGE="}},
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeError(t, rec).Error)
}

func TestListEndpoint(t *testing.T) {
	records := &mockRecordService{
		listFunc: func(_ context.Context, channelName, dir string) (*models.ListResponse, error) {
			assert.Equal(t, "alpha", channelName)
			assert.Equal(t, "docs", dir)
			return &models.ListResponse{Success: true, Dir: "docs", Files: []models.IndexRecord{}}, nil
		},
	}
	h := newTestHandler(nil, records, config.App{})

	req := httptest.NewRequest(http.MethodGet, "/api/files?channel=alpha&dir=docs", nil)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(nil, nil, config.App{Version: "1.2.3"})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestTraceIDHeaderSet(t *testing.T) {
	h := newTestHandler(nil, nil, config.App{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestTraceIDHeaderEchoed(t *testing.T) {
	h := newTestHandler(nil, nil, config.App{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(traceIDHeader, "trace-123")
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, "trace-123", rec.Header().Get(traceIDHeader))
}

func TestAuthMiddleware(t *testing.T) {
	app := config.App{TokenSignKey: "secret", TokenIssuer: "commitgate"}

	token, err := utils.GenerateCallerToken("commitgate", "uploader-7", time.Hour, "secret")
	require.NoError(t, err)

	var seenCaller string
	upload := &mockUploadService{
		uploadFunc: func(ctx context.Context, _ models.BatchRequest, _ string) (*models.UploadResponse, error) {
			seenCaller, _ = utils.GetCallerFromContext(ctx)
			return &models.UploadResponse{Success: true}, nil
		},
	}
	h := newTestHandler(upload, nil, app)
	router := h.Init()

	body, err := json.Marshal(models.BatchRequest{
		Files: []models.FileInput{{Name: "a.txt", ContentBase64: "YWxwaGE="}},
	})
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "AUTH_ERROR", decodeError(t, rec).Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other, err := utils.GenerateCallerToken("someone-else", "uploader-7", time.Hour, "secret")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+other)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "uploader-7", seenCaller)
	})

	t.Run("health stays open", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuthDisabledWithoutSignKey(t *testing.T) {
	upload := &mockUploadService{
		uploadFunc: func(context.Context, models.BatchRequest, string) (*models.UploadResponse, error) {
			return &models.UploadResponse{Success: true}, nil
		},
	}
	h := newTestHandler(upload, nil, config.App{})

	rec := postUpload(t, h, models.BatchRequest{
		Files: []models.FileInput{{Name: "a.txt", ContentBase64: "YWxwaGE="}},
	})

	require.Equal(t, http.StatusOK, rec.Code)
}
