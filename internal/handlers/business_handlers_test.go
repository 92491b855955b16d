package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/atlas-card/atlas-api/internal/db"
	"github.com/atlas-card/atlas-api/internal/logger"
	"github.com/atlas-card/atlas-api/internal/mocks"
)

func init() {
	logger.InitLogger("test")
	gin.SetMode(gin.TestMode)
}

const testWallet = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

func newBusinessTestRouter(t *testing.T) (*gin.Engine, *mocks.MockQuerier) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockQuerier := mocks.NewMockQuerier(ctrl)

	handler := NewBusinessHandler(NewCommonServices(mockQuerier, nil, nil, nil, nil, nil))

	router := gin.New()
	router.GET("/businesses", handler.ListBusinesses)
	router.POST("/businesses", handler.CreateBusiness)
	router.GET("/businesses/:wallet", handler.GetBusiness)
	router.PUT("/businesses/:wallet", handler.UpdateBusiness)
	router.DELETE("/businesses/:wallet", handler.DeleteBusiness)
	return router, mockQuerier
}

func sampleBusiness() db.Business {
	return db.Business{
		ID:     uuid.New(),
		Name:   "Coffee Shop",
		Wallet: testWallet,
	}
}

func TestGetBusiness(t *testing.T) {
	tests := []struct {
		name       string
		wallet     string
		mockSetup  func(m *mocks.MockQuerier)
		wantStatus int
	}{
		{
			name:   "found",
			wallet: testWallet,
			mockSetup: func(m *mocks.MockQuerier) {
				m.EXPECT().GetBusinessByWallet(gomock.Any(), testWallet).Return(sampleBusiness(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "not found",
			wallet: testWallet,
			mockSetup: func(m *mocks.MockQuerier) {
				m.EXPECT().GetBusinessByWallet(gomock.Any(), testWallet).Return(db.Business{}, pgx.ErrNoRows)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid wallet",
			wallet:     "not-an-address",
			mockSetup:  func(m *mocks.MockQuerier) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockQuerier := newBusinessTestRouter(t)
			tt.mockSetup(mockQuerier)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/businesses/"+tt.wallet, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var resp BusinessResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "business", resp.Object)
				assert.Equal(t, testWallet, resp.Wallet)
			}
		})
	}
}

func TestGetBusiness_NormalizesWalletCase(t *testing.T) {
	router, mockQuerier := newBusinessTestRouter(t)

	// Checksummed input resolves to the lowercase stored form.
	mockQuerier.EXPECT().GetBusinessByWallet(gomock.Any(), testWallet).Return(sampleBusiness(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/businesses/0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateBusiness(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mockSetup  func(m *mocks.MockQuerier)
		wantStatus int
	}{
		{
			name: "created",
			body: `{"name":"Coffee Shop","wallet":"0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"}`,
			mockSetup: func(m *mocks.MockQuerier) {
				m.EXPECT().CreateBusiness(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ any, arg db.CreateBusinessParams) (db.Business, error) {
						assert.Equal(t, testWallet, arg.Wallet)
						return sampleBusiness(), nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "duplicate wallet",
			body: `{"name":"Coffee Shop","wallet":"0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"}`,
			mockSetup: func(m *mocks.MockQuerier) {
				m.EXPECT().CreateBusiness(gomock.Any(), gomock.Any()).Return(db.Business{}, &pgconn.PgError{Code: "23505"})
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "missing name",
			body:       `{"wallet":"0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"}`,
			mockSetup:  func(m *mocks.MockQuerier) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid wallet",
			body:       `{"name":"Coffee Shop","wallet":"nope"}`,
			mockSetup:  func(m *mocks.MockQuerier) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockQuerier := newBusinessTestRouter(t)
			tt.mockSetup(mockQuerier)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/businesses", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestListBusinesses(t *testing.T) {
	router, mockQuerier := newBusinessTestRouter(t)

	mockQuerier.EXPECT().ListBusinesses(gomock.Any()).Return([]db.Business{sampleBusiness()}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/businesses", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"object":"list"`)
	assert.Contains(t, w.Body.String(), "Coffee Shop")
}

func TestDeleteBusiness(t *testing.T) {
	tests := []struct {
		name       string
		mockSetup  func(m *mocks.MockQuerier)
		wantStatus int
	}{
		{
			name: "deleted",
			mockSetup: func(m *mocks.MockQuerier) {
				m.EXPECT().DeleteBusiness(gomock.Any(), testWallet).Return(int64(1), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			mockSetup: func(m *mocks.MockQuerier) {
				m.EXPECT().DeleteBusiness(gomock.Any(), testWallet).Return(int64(0), nil)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "database error",
			mockSetup: func(m *mocks.MockQuerier) {
				m.EXPECT().DeleteBusiness(gomock.Any(), testWallet).Return(int64(0), errors.New("connection lost"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockQuerier := newBusinessTestRouter(t)
			tt.mockSetup(mockQuerier)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodDelete, "/businesses/"+testWallet, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
