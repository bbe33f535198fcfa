package router_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"uploadbroker/internal/domain"
	"uploadbroker/internal/handler"
	"uploadbroker/internal/metrics"
	"uploadbroker/internal/port"
	"uploadbroker/internal/router"
	"uploadbroker/internal/service"
	"uploadbroker/internal/uploader"
	"uploadbroker/mocks"
)

// objectStore records PUTs the way a presigned endpoint would receive them.
type objectStore struct {
	mu      sync.Mutex
	objects map[string]string
	headers map[string]http.Header
}

func (s *objectStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, _ := io.ReadAll(r.Body)
	key := r.URL.Path[len("/store/"):]

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = string(body)
	s.headers[key] = r.Header.Clone()
	w.WriteHeader(http.StatusOK)
}

func TestUploadClientAgainstBroker(t *testing.T) {
	store := &objectStore{objects: map[string]string{}, headers: map[string]http.Header{}}
	storeSrv := httptest.NewServer(store)
	t.Cleanup(storeSrv.Close)

	cfg := testConfig()
	cfg.Storage.Encryption = true

	presigner := new(mocks.MockObjectStorage)
	presigner.On("PresignPut", mock.Anything, mock.MatchedBy(func(in port.PresignInput) bool {
		return in.Bucket == "b" && in.Key == "a.txt" && in.ContentType == "text/plain" && in.Encryption
	})).Return(&port.PresignOutput{
		URL:     storeSrv.URL + "/store/a.txt?X-Amz-SignedHeaders=host%3Bx-amz-server-side-encryption",
		Method:  http.MethodPut,
		Headers: map[string]string{"X-Amz-Server-Side-Encryption": domain.SSEAlgorithmAES256},
	}, nil)

	presignSvc := service.NewPresignService(presigner, &cfg.Storage, nil, nil)
	h := router.Handlers{
		Presign:      handler.NewPresignHandler(presignSvc, nil),
		DirectUpload: handler.NewDirectUploadHandler(new(mocks.MockDirectUploadService), cfg.Storage.MaxUploadMB, nil),
		Prompt:       handler.NewPromptHandler(new(mocks.MockPromptService), nil),
		Health:       handler.NewHealthHandler(&cfg.Storage),
	}
	brokerSrv := httptest.NewServer(router.Setup(cfg, h, metrics.New(), nil))
	t.Cleanup(brokerSrv.Close)

	client := uploader.New(brokerSrv.URL)

	t.Run("stores the file under its name", func(t *testing.T) {
		outcomes := client.UploadBatch(context.Background(), []uploader.File{
			uploader.BytesFile("a.txt", "text/plain", []byte("hello")),
		})

		require.Len(t, outcomes, 1)
		assert.Equal(t, uploader.Outcome{Filename: "a.txt", Key: "a.txt"}, outcomes[0])
		assert.Equal(t, "hello", store.objects["a.txt"])
		assert.Equal(t, "text/plain", store.headers["a.txt"].Get("Content-Type"))
		assert.Equal(t, domain.SSEAlgorithmAES256, store.headers["a.txt"].Get("X-Amz-Server-Side-Encryption"))
	})

	t.Run("empty name is rejected by the broker", func(t *testing.T) {
		outcomes := client.UploadBatch(context.Background(), []uploader.File{
			uploader.BytesFile("", "", []byte("x")),
		})

		require.Len(t, outcomes, 1)
		assert.Empty(t, outcomes[0].Key)
		assert.Contains(t, outcomes[0].Error, "filename required")
	})

	presigner.AssertNumberOfCalls(t, "PresignPut", 1)
}
