package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LavaJover/shvark-fulfillment-service/internal/delivery/http/dto/response"
	"github.com/LavaJover/shvark-fulfillment-service/internal/delivery/http/handlers"
	orderdto "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/dto/order"
	usecase "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/order"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUsecase embeds the interface so only the methods a test exercises
// need an implementation.
type stubUsecase struct {
	usecase.OrderUsecase
	stats *orderdto.CourierStats
}

func (s *stubUsecase) GetCourierStats(ctx context.Context, courierID int64) (*orderdto.CourierStats, error) {
	return s.stats, nil
}

func newRouter(uc usecase.OrderUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers.NewOrderHandler(uc, nil, log).RegisterRoutes(router)
	return router
}

func TestCourierStatsEndpoint(t *testing.T) {
	router := newRouter(&stubUsecase{stats: &orderdto.CourierStats{
		CourierID:      21,
		OpenOrders:     3,
		CollectedCash:  6600,
		CollectedCount: 2,
	}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/couriers/21/stats", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body response.CourierStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(21), body.CourierID)
	assert.Equal(t, int64(3), body.OpenOrders)
	assert.Equal(t, 6600.0, body.CollectedCash)
	assert.Equal(t, 2, body.CollectedCount)
}

func TestCourierStatsEndpointRejectsBadID(t *testing.T) {
	router := newRouter(&stubUsecase{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/couriers/abc/stats", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
