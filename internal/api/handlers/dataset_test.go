package handlers

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sync"
	"testing"

	"github.com/RMahshie/rfdesk/internal/repository"
	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/RMahshie/rfdesk/pkg/touchstone"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testMaxBytes = 1 << 20

func newDatasetRequest(fileName string, size int64) *models.CreateDatasetRequest {
	req := &models.CreateDatasetRequest{}
	req.Body.Name = "LNA sweep"
	req.Body.FileName = fileName
	req.Body.FileSize = size
	return req
}

func TestCreateDataset(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockDatasetRepository)
		mockS3 := new(MockS3Service)
		h := NewDatasetHandler(mockRepo, mockS3, nil, testMaxBytes)

		keyPattern := regexp.MustCompile(`^datasets/[0-9a-f-]{36}\.s2p$`)
		mockS3.On("GenerateUploadURL", mock.Anything, mock.MatchedBy(keyPattern.MatchString), "text/plain").
			Return("https://bucket.example/put", nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Dataset")).Return(nil)

		resp, err := h.CreateDataset(context.Background(), newDatasetRequest("LNA.S2P", 4096))
		require.NoError(t, err)

		dataset := resp.Body.Data
		assert.Equal(t, models.DatasetPending, dataset.Status)
		assert.Equal(t, "LNA sweep", dataset.Name)
		assert.Equal(t, int64(4096), dataset.FileSize)
		assert.Regexp(t, keyPattern, dataset.S3Key)
		assert.Equal(t, dataset.S3Key, resp.Body.Upload.Key)
		assert.Equal(t, "https://bucket.example/put", resp.Body.Upload.UploadURL)
		mockRepo.AssertExpectations(t)
		mockS3.AssertExpectations(t)
	})

	tests := []struct {
		name     string
		fileName string
		size     int64
	}{
		{name: "wrong extension", fileName: "sweep.csv", size: 100},
		{name: "s3p not supported", fileName: "mixer.s3p", size: 100},
		{name: "too large", fileName: "sweep.s1p", size: testMaxBytes + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockDatasetRepository)
			mockS3 := new(MockS3Service)
			h := NewDatasetHandler(mockRepo, mockS3, nil, testMaxBytes)

			_, err := h.CreateDataset(context.Background(), newDatasetRequest(tt.fileName, tt.size))
			requireStatus(t, err, http.StatusBadRequest)
			mockS3.AssertNotCalled(t, "GenerateUploadURL", mock.Anything, mock.Anything, mock.Anything)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("presign failure", func(t *testing.T) {
		mockRepo := new(MockDatasetRepository)
		mockS3 := new(MockS3Service)
		h := NewDatasetHandler(mockRepo, mockS3, nil, testMaxBytes)
		mockS3.On("GenerateUploadURL", mock.Anything, mock.Anything, mock.Anything).Return("", fmt.Errorf("boom"))

		_, err := h.CreateDataset(context.Background(), newDatasetRequest("sweep.s1p", 10))
		requireStatus(t, err, http.StatusInternalServerError)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestStartProcessing(t *testing.T) {
	t.Run("runs in background", func(t *testing.T) {
		mockRepo := new(MockDatasetRepository)
		mockProc := new(MockProcessingService)
		h := NewDatasetHandler(mockRepo, nil, mockProc, testMaxBytes)

		id := uuid.New()
		mockRepo.On("StartProcessing", mock.Anything, id).Return(nil)
		mockProc.On("ProcessDataset", mock.Anything, id).Return(nil)

		resp, err := h.StartProcessing(context.Background(), &models.DatasetIDRequest{ID: id.String()})
		require.NoError(t, err)
		assert.Equal(t, models.DatasetProcessing, resp.Body.Status)
		assert.Equal(t, id.String(), resp.Body.ID)

		h.Wait()
		mockProc.AssertExpectations(t)
		mockRepo.AssertNotCalled(t, "UpdateError", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("records processing error", func(t *testing.T) {
		mockRepo := new(MockDatasetRepository)
		mockProc := new(MockProcessingService)
		h := NewDatasetHandler(mockRepo, nil, mockProc, testMaxBytes)

		id := uuid.New()
		mockRepo.On("StartProcessing", mock.Anything, id).Return(nil)
		mockProc.On("ProcessDataset", mock.Anything, id).Return(fmt.Errorf("database gone"))
		mockRepo.On("UpdateError", mock.Anything, id, "Processing failed: database gone").Return(nil)

		_, err := h.StartProcessing(context.Background(), &models.DatasetIDRequest{ID: id.String()})
		require.NoError(t, err)

		h.Wait()
		mockRepo.AssertExpectations(t)
	})

	t.Run("already processing", func(t *testing.T) {
		mockRepo := new(MockDatasetRepository)
		mockProc := new(MockProcessingService)
		h := NewDatasetHandler(mockRepo, nil, mockProc, testMaxBytes)

		id := uuid.New()
		mockRepo.On("StartProcessing", mock.Anything, id).Return(repository.ErrAlreadyProcessing)

		_, err := h.StartProcessing(context.Background(), &models.DatasetIDRequest{ID: id.String()})
		requireStatus(t, err, http.StatusConflict)
		h.Wait()
		mockProc.AssertNotCalled(t, "ProcessDataset", mock.Anything, mock.Anything)
	})

	t.Run("second start loses the claim", func(t *testing.T) {
		mockRepo := new(MockDatasetRepository)
		mockProc := new(MockProcessingService)
		h := NewDatasetHandler(mockRepo, nil, mockProc, testMaxBytes)

		id := uuid.New()
		mockRepo.On("StartProcessing", mock.Anything, id).Return(nil).Once()
		mockRepo.On("StartProcessing", mock.Anything, id).Return(repository.ErrAlreadyProcessing)
		mockProc.On("ProcessDataset", mock.Anything, id).Return(nil)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = h.StartProcessing(context.Background(), &models.DatasetIDRequest{ID: id.String()})
			}(i)
		}
		wg.Wait()
		h.Wait()

		failed := 0
		for _, err := range errs {
			if err != nil {
				requireStatus(t, err, http.StatusConflict)
				failed++
			}
		}
		assert.Equal(t, 1, failed)
		mockProc.AssertNumberOfCalls(t, "ProcessDataset", 1)
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown dataset", func(t *testing.T) {
		mockRepo := new(MockDatasetRepository)
		h := NewDatasetHandler(mockRepo, nil, nil, testMaxBytes)

		id := uuid.New()
		mockRepo.On("StartProcessing", mock.Anything, id).Return(repository.ErrNotFound)

		_, err := h.StartProcessing(context.Background(), &models.DatasetIDRequest{ID: id.String()})
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		h := NewDatasetHandler(nil, nil, nil, testMaxBytes)
		_, err := h.StartProcessing(context.Background(), &models.DatasetIDRequest{ID: "xyz"})
		requireStatus(t, err, http.StatusBadRequest)
	})
}

func TestGetDatasetStatus(t *testing.T) {
	mockRepo := new(MockDatasetRepository)
	h := NewDatasetHandler(mockRepo, nil, nil, testMaxBytes)

	id := uuid.New()
	msg := "no data rows"
	mockRepo.On("GetByID", mock.Anything, id).
		Return(&models.Dataset{ID: id.String(), Status: models.DatasetFailed, Progress: 30, ErrorMessage: &msg}, nil)

	resp, err := h.GetDatasetStatus(context.Background(), &models.DatasetIDRequest{ID: id.String()})
	require.NoError(t, err)
	assert.Equal(t, models.DatasetFailed, resp.Body.Status)
	assert.Equal(t, 30, resp.Body.Progress)
	require.NotNil(t, resp.Body.Error)
	assert.Equal(t, msg, *resp.Body.Error)
	assert.Equal(t, statusMessage(models.DatasetFailed, 30), resp.Body.Message)
}

func TestGetDatasetResults(t *testing.T) {
	t.Run("completed", func(t *testing.T) {
		mockRepo := new(MockDatasetRepository)
		h := NewDatasetHandler(mockRepo, nil, nil, testMaxBytes)

		id := uuid.New()
		doc := touchstone.Parse(touchstone.Example(1))
		results := &models.DatasetResults{Document: doc, Summary: touchstone.Summarize(doc)}
		mockRepo.On("GetByID", mock.Anything, id).Return(&models.Dataset{ID: id.String(), Status: models.DatasetCompleted}, nil)
		mockRepo.On("GetResults", mock.Anything, id).Return(results, nil)

		resp, err := h.GetDatasetResults(context.Background(), &models.DatasetIDRequest{ID: id.String()})
		require.NoError(t, err)
		assert.Equal(t, results, resp.Body.Data)
	})

	t.Run("not completed", func(t *testing.T) {
		mockRepo := new(MockDatasetRepository)
		h := NewDatasetHandler(mockRepo, nil, nil, testMaxBytes)

		id := uuid.New()
		mockRepo.On("GetByID", mock.Anything, id).Return(&models.Dataset{ID: id.String(), Status: models.DatasetProcessing}, nil)

		_, err := h.GetDatasetResults(context.Background(), &models.DatasetIDRequest{ID: id.String()})
		requireStatus(t, err, http.StatusConflict)
		mockRepo.AssertNotCalled(t, "GetResults", mock.Anything, mock.Anything)
	})

	t.Run("results missing", func(t *testing.T) {
		mockRepo := new(MockDatasetRepository)
		h := NewDatasetHandler(mockRepo, nil, nil, testMaxBytes)

		id := uuid.New()
		mockRepo.On("GetByID", mock.Anything, id).Return(&models.Dataset{ID: id.String(), Status: models.DatasetCompleted}, nil)
		mockRepo.On("GetResults", mock.Anything, id).Return(nil, repository.ErrNotFound)

		_, err := h.GetDatasetResults(context.Background(), &models.DatasetIDRequest{ID: id.String()})
		requireStatus(t, err, http.StatusNotFound)
	})
}

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		status   string
		progress int
		want     string
	}{
		{models.DatasetPending, 0, "Waiting for upload and processing..."},
		{models.DatasetProcessing, 10, "Starting processing..."},
		{models.DatasetProcessing, 30, "Downloading touchstone file..."},
		{models.DatasetProcessing, 60, "Parsing S-parameters..."},
		{models.DatasetProcessing, 80, "Summarizing results..."},
		{models.DatasetCompleted, 100, "Processing complete!"},
		{"bogus", 0, "Unknown status"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusMessage(tt.status, tt.progress))
	}
}
