package processing

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/RMahshie/rfdesk/internal/repository/postgres"
	"github.com/RMahshie/rfdesk/internal/storage"
	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/RMahshie/rfdesk/pkg/touchstone"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/minio"
	pgContainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// MockDatasetRepository is a mock implementation of DatasetRepository
type MockDatasetRepository struct {
	mock.Mock
}

func (m *MockDatasetRepository) Create(ctx context.Context, d *models.Dataset) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDatasetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Dataset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dataset), args.Error(1)
}

func (m *MockDatasetRepository) StartProcessing(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDatasetRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	args := m.Called(ctx, id, status, progress)
	return args.Error(0)
}

func (m *MockDatasetRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	args := m.Called(ctx, id, errorMsg)
	return args.Error(0)
}

func (m *MockDatasetRepository) StoreResults(ctx context.Context, id uuid.UUID, results *models.DatasetResults) error {
	args := m.Called(ctx, id, results)
	return args.Error(0)
}

func (m *MockDatasetRepository) GetResults(ctx context.Context, id uuid.UUID) (*models.DatasetResults, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DatasetResults), args.Error(1)
}

// MockS3Service is a mock implementation of S3Service
type MockS3Service struct {
	mock.Mock
}

func (m *MockS3Service) GenerateUploadURL(ctx context.Context, key, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) UploadFile(ctx context.Context, key, contentType string, data []byte) error {
	args := m.Called(ctx, key, contentType, data)
	return args.Error(0)
}

func (m *MockS3Service) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockS3Service) ListFiles(ctx context.Context, prefix string) ([]models.FileInfo, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).([]models.FileInfo), args.Error(1)
}

func (m *MockS3Service) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// recordingMetrics counts calls instead of exporting them
type recordingMetrics struct {
	parsed   int
	statuses []string
}

func (r *recordingMetrics) TouchstoneParsed(string, *touchstone.Document) { r.parsed++ }
func (r *recordingMetrics) DatasetProcessed(status string) { r.statuses = append(r.statuses, status) }

func TestProcessDataset(t *testing.T) {
	id := uuid.New()
	dataset := &models.Dataset{
		ID:       id.String(),
		Name:     "bandpass",
		FileName: "bandpass.s2p",
		S3Key:    "datasets/" + id.String() + ".s2p",
		Status:   models.DatasetPending,
	}

	tests := []struct {
		name        string
		download    []byte
		downloadErr error
		storeErr    error
		maxBytes    int64
		wantErr     bool
		wantFailure string
		wantStatus  []string
	}{
		{
			name:       "two-port file completes",
			download:   []byte(touchstone.Example(2)),
			wantStatus: []string{models.DatasetCompleted},
		},
		{
			name:        "download failure marks dataset failed",
			downloadErr: errors.New("NoSuchKey"),
			wantFailure: "Failed to download touchstone file",
			wantStatus:  []string{models.DatasetFailed},
		},
		{
			name:        "file without data rows fails",
			download:    []byte("! only comments\n# GHz S MA R 50\n"),
			wantFailure: "No valid data rows found in touchstone file",
			wantStatus:  []string{models.DatasetFailed},
		},
		{
			name:        "oversized file fails",
			download:    []byte(touchstone.Example(1)),
			maxBytes:    16,
			wantFailure: "File exceeds the 16 byte limit",
			wantStatus:  []string{models.DatasetFailed},
		},
		{
			name:        "store failure is returned",
			download:    []byte(touchstone.Example(2)),
			storeErr:    errors.New("connection reset"),
			wantErr:     true,
			wantFailure: "Failed to store results",
			wantStatus:  []string{models.DatasetFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := new(MockDatasetRepository)
			s3 := new(MockS3Service)
			metrics := &recordingMetrics{}

			repo.On("UpdateStatus", ctx, id, models.DatasetProcessing, mock.AnythingOfType("int")).Return(nil)
			repo.On("GetByID", ctx, id).Return(dataset, nil)
			s3.On("DownloadFile", ctx, dataset.S3Key).Return(tt.download, tt.downloadErr)

			if tt.wantFailure != "" {
				repo.On("UpdateError", ctx, id, tt.wantFailure).Return(nil)
			}
			if tt.wantFailure == "" || tt.storeErr != nil {
				repo.On("StoreResults", ctx, id, mock.MatchedBy(func(r *models.DatasetResults) bool {
					return r.Document.Ports == 2 && r.Summary.Points == len(r.Document.Samples)
				})).Return(tt.storeErr)
			}
			if tt.wantFailure == "" {
				repo.On("UpdateStatus", ctx, id, models.DatasetCompleted, 100).Return(nil)
			}

			svc := NewProcessingService(s3, repo, metrics, tt.maxBytes)
			err := svc.ProcessDataset(ctx, id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantStatus, metrics.statuses)
			repo.AssertExpectations(t)
			s3.AssertExpectations(t)
		})
	}
}

func TestProcessDataset_StatusUpdateError(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := new(MockDatasetRepository)
	repo.On("UpdateStatus", ctx, id, models.DatasetProcessing, 10).Return(errors.New("db down"))

	svc := NewProcessingService(new(MockS3Service), repo, &recordingMetrics{}, 0)
	assert.Error(t, svc.ProcessDataset(ctx, id))
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestProcessDataset_WithoutMetrics(t *testing.T) {
	id := uuid.New()
	dataset := &models.Dataset{ID: id.String(), FileName: "dut.s1p", S3Key: "datasets/dut.s1p"}

	tests := []struct {
		name     string
		download []byte
		failure  string
	}{
		{name: "completes", download: []byte(touchstone.Example(1))},
		{name: "fails", download: []byte("! nothing here\n"), failure: "No valid data rows found in touchstone file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := new(MockDatasetRepository)
			s3 := new(MockS3Service)
			repo.On("UpdateStatus", ctx, id, mock.AnythingOfType("string"), mock.AnythingOfType("int")).Return(nil)
			repo.On("GetByID", ctx, id).Return(dataset, nil)
			repo.On("StoreResults", ctx, id, mock.Anything).Return(nil).Maybe()
			repo.On("UpdateError", ctx, id, tt.failure).Return(nil).Maybe()
			s3.On("DownloadFile", ctx, dataset.S3Key).Return(tt.download, nil)

			svc := NewProcessingService(s3, repo, nil, 0)
			assert.NotPanics(t, func() {
				assert.NoError(t, svc.ProcessDataset(ctx, id))
			})
			if tt.failure != "" {
				repo.AssertCalled(t, "UpdateError", ctx, id, tt.failure)
			} else {
				repo.AssertCalled(t, "UpdateStatus", ctx, id, models.DatasetCompleted, 100)
			}
		})
	}
}

// TestProcessDatasetPipeline_Integration runs the pipeline against real PostgreSQL and MinIO
func TestProcessDatasetPipeline_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	scripts, err := filepath.Glob("../../migrations/*.up.sql")
	require.NoError(t, err)
	sort.Strings(scripts)

	pg, err := pgContainer.Run(ctx,
		"postgres:15-alpine",
		pgContainer.WithDatabase("rfdesk_test"),
		pgContainer.WithUsername("testuser"),
		pgContainer.WithPassword("testpass"),
		pgContainer.WithInitScripts(scripts...),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	defer func() { require.NoError(t, pg.Terminate(ctx)) }()

	dbURL, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	minioContainer, err := minio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		minio.WithUsername("minioadmin"),
		minio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)
	defer func() { require.NoError(t, minioContainer.Terminate(ctx)) }()

	minioURL, err := minioContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewPostgresDatasetRepository(db)

	s3Config := storage.S3Config{
		Bucket:    "rfdesk-test-" + uuid.New().String()[:8],
		Endpoint:  minioURL,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	}
	require.NoError(t, storage.EnsureBucket(ctx, s3Config))
	s3Service, err := storage.NewS3Service(s3Config)
	require.NoError(t, err)

	svc := NewProcessingService(s3Service, repo, &recordingMetrics{}, 0)

	create := func(key string) uuid.UUID {
		id := uuid.New()
		require.NoError(t, repo.Create(ctx, &models.Dataset{
			ID:        id.String(),
			Name:      "integration",
			FileName:  "lna.s2p",
			FileSize:  1,
			S3Key:     key,
			Status:    models.DatasetPending,
			CreatedAt: time.Now().UTC(),
		}))
		return id
	}

	t.Run("completes", func(t *testing.T) {
		key := "datasets/lna.s2p"
		require.NoError(t, s3Service.UploadFile(ctx, key, "text/plain", []byte(touchstone.Example(2))))
		id := create(key)

		require.NoError(t, svc.ProcessDataset(ctx, id))

		d, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.DatasetCompleted, d.Status)
		assert.Equal(t, 100, d.Progress)
		assert.NotNil(t, d.CompletedAt)

		results, err := repo.GetResults(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 2, results.Document.Ports)
		assert.NotNil(t, results.Summary.MinInsertionLossDB)
	})

	t.Run("missing object fails", func(t *testing.T) {
		id := create("datasets/missing.s2p")

		require.NoError(t, svc.ProcessDataset(ctx, id))

		d, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.DatasetFailed, d.Status)
		require.NotNil(t, d.ErrorMessage)
	})
}
