package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/LavaJover/shvark-fulfillment-service/internal/delivery/http/dto/request"
	"github.com/LavaJover/shvark-fulfillment-service/internal/delivery/http/dto/response"
	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/dto/order"
	usecase "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/order"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	uc     usecase.OrderUsecase
	proofs domain.ProofStore
	log    *slog.Logger
}

func NewOrderHandler(uc usecase.OrderUsecase, proofs domain.ProofStore, log *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, proofs: proofs, log: log}
}

func (h *OrderHandler) RegisterRoutes(r *gin.Engine) {
	orders := r.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("/:id", h.GetOrder)
		orders.GET("/invoice/:invoice", h.GetOrderByInvoice)
		orders.GET("/:id/activity", h.GetOrderActivity)
		orders.GET("/:id/attempts", h.GetDeliveryAttempts)
		orders.GET("/unassigned/:role", h.GetUnassignedOrders)
		orders.POST("/bulk-assign", h.BulkAssign)
		orders.POST("/:id/transition", h.Transition)
		orders.POST("/:id/assign", h.Assign)
		orders.POST("/:id/package", h.MarkPackaged)
		orders.POST("/:id/delivery-attempt", h.AttemptDelivery)
		orders.POST("/:id/confirm-delivery", h.ConfirmDelivery)
		orders.POST("/:id/collect-cod", h.CollectCOD)
	}
	couriers := r.Group("/couriers")
	{
		couriers.GET("/:id/stats", h.CourierStats)
		couriers.POST("/:id/settle", h.SettleCourier)
	}
	r.GET("/workers/:role/:id/orders", h.GetWorkerOrders)
}

// writeError maps domain rejections to HTTP statuses. Storage failures
// stay 500 and are not echoed back to the client.
func (h *OrderHandler) writeError(c *gin.Context, err error) {
	var (
		validationErr *domain.ValidationError
		authErr       *domain.AuthorizationError
		transitionErr *domain.InvalidTransitionError
		fraudErr      *domain.FraudBlockedError
		duplicateErr  *domain.DuplicateSubmissionError
		rateErr       *domain.RateLimitedError
	)

	switch {
	case errors.As(err, &validationErr), errors.Is(err, domain.ErrMissingProof):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	case errors.As(err, &authErr), errors.As(err, &fraudErr):
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: err.Error()})
	case errors.As(err, &transitionErr),
		errors.As(err, &duplicateErr),
		errors.Is(err, domain.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
	case errors.As(err, &rateErr):
		c.JSON(http.StatusTooManyRequests, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrWorkerNotFound),
		errors.Is(err, domain.ErrSettlementNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
	default:
		h.log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: name + " must be a positive integer"})
		return 0, false
	}
	return id, true
}

func actorFrom(req request.ActorRequest) domain.Actor {
	return domain.Actor{ID: req.ActorID, Role: domain.ActorRole(req.ActorRole)}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	items := make([]orderdto.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderdto.CartItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	out, err := h.uc.CreateOrder(c.Request.Context(), &orderdto.CreateOrderInput{
		UserID:          req.UserID,
		Items:           items,
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
		ShippingAddress: req.ShippingAddress,
		DeliveryCity:    req.DeliveryCity,
		ClientIP:        c.ClientIP(),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.CreateOrderResponse{
		Order:        response.ToOrderResponse(out.Order),
		FraudTraceID: out.Assessment.TraceID,
		FraudScore:   out.Assessment.Score,
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.uc.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ToOrderResponse(order))
}

func (h *OrderHandler) GetOrderByInvoice(c *gin.Context) {
	order, err := h.uc.GetOrderByInvoice(c.Request.Context(), c.Param("invoice"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ToOrderResponse(order))
}

func (h *OrderHandler) GetOrderActivity(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	activities, err := h.uc.GetOrderActivity(c.Request.Context(), orderID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ToActivityResponses(activities))
}

func (h *OrderHandler) GetDeliveryAttempts(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	attempts, err := h.uc.GetDeliveryAttempts(c.Request.Context(), orderID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ToAttemptResponses(attempts))
}

func (h *OrderHandler) GetUnassignedOrders(c *gin.Context) {
	role := domain.ActorRole(c.Param("role"))
	orders, err := h.uc.GetUnassignedOrders(c.Request.Context(), role)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ToOrderResponses(orders))
}

func (h *OrderHandler) GetWorkerOrders(c *gin.Context) {
	workerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	role := domain.ActorRole(c.Param("role"))
	orders, err := h.uc.GetOrdersByWorker(c.Request.Context(), role, workerID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ToOrderResponses(orders))
}

func (h *OrderHandler) Transition(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	order, err := h.uc.TransitionOrder(c.Request.Context(), &orderdto.TransitionInput{
		OrderID: orderID,
		Actor:   actorFrom(req.ActorRequest),
		Target:  domain.OrderStatus(req.Status),
		Note:    req.Note,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ToOrderResponse(order))
}

func (h *OrderHandler) Assign(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	order, err := h.uc.AssignOrder(c.Request.Context(), &orderdto.AssignInput{
		OrderID:  orderID,
		Actor:    actorFrom(req.ActorRequest),
		Role:     domain.ActorRole(req.Role),
		WorkerID: req.WorkerID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ToOrderResponse(order))
}

func (h *OrderHandler) BulkAssign(c *gin.Context) {
	var req request.BulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.uc.BulkAssignOrders(c.Request.Context(), &orderdto.BulkAssignInput{
		Actor:    actorFrom(req.ActorRequest),
		Role:     domain.ActorRole(req.Role),
		WorkerID: req.WorkerID,
		OrderIDs: req.OrderIDs,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.BulkAssignResponse{
		Assigned: result.Assigned,
		Failed:   result.Failed,
	})
}

func (h *OrderHandler) MarkPackaged(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	order, err := h.uc.MarkPackaged(c.Request.Context(), orderID, actorFrom(req.ActorRequest), req.Note)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ToOrderResponse(order))
}

func (h *OrderHandler) AttemptDelivery(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.AttemptDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	attempt, err := h.uc.AttemptDelivery(c.Request.Context(), &orderdto.AttemptDeliveryInput{
		OrderID: orderID,
		Actor:   actorFrom(req.ActorRequest),
		Reason:  req.Reason,
		Notes:   req.Notes,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.ToAttemptResponses([]*domain.DeliveryAttempt{attempt})[0])
}

// ConfirmDelivery takes a multipart form: actor fields plus either a
// "proof" file upload or an already stored "proof_ref".
func (h *OrderHandler) ConfirmDelivery(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	actorID, err := strconv.ParseInt(c.PostForm("actor_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "actor_id must be a positive integer"})
		return
	}
	actor := domain.Actor{ID: actorID, Role: domain.ActorRole(c.PostForm("actor_role"))}

	proofRef := c.PostForm("proof_ref")
	if file, err := c.FormFile("proof"); err == nil {
		src, err := file.Open()
		if err != nil {
			h.writeError(c, err)
			return
		}
		defer src.Close()
		proofRef, err = h.proofs.SaveProof(c.Request.Context(), orderID, file.Filename, src)
		if err != nil {
			h.writeError(c, err)
			return
		}
	}

	order, err := h.uc.ConfirmDelivery(c.Request.Context(), &orderdto.ConfirmDeliveryInput{
		OrderID:       orderID,
		Actor:         actor,
		ProofRef:      proofRef,
		OTPUsed:       c.PostForm("otp_used") == "true",
		SignatureFlag: c.PostForm("signature_flag") == "true",
		Notes:         c.PostForm("notes"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ToOrderResponse(order))
}

func (h *OrderHandler) CollectCOD(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.CollectCODRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	settlement, err := h.uc.CollectCOD(c.Request.Context(), &orderdto.CollectCODInput{
		OrderID: orderID,
		Actor:   actorFrom(req.ActorRequest),
		Amount:  req.Amount,
		Notes:   req.Notes,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ToSettlementResponse(settlement))
}

func (h *OrderHandler) CourierStats(c *gin.Context) {
	courierID, ok := pathID(c, "id")
	if !ok {
		return
	}
	stats, err := h.uc.GetCourierStats(c.Request.Context(), courierID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.CourierStatsResponse{
		CourierID:      stats.CourierID,
		OpenOrders:     stats.OpenOrders,
		CollectedCash:  stats.CollectedCash,
		CollectedCount: stats.CollectedCount,
	})
}

func (h *OrderHandler) SettleCourier(c *gin.Context) {
	courierID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.SettleCourierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	out, err := h.uc.SettleCourier(c.Request.Context(), actorFrom(req.ActorRequest), courierID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.BatchResponse{
		ID:          out.Batch.ID,
		CourierID:   out.Batch.CourierID,
		TotalAmount: out.Batch.TotalAmount,
		OrderCount:  out.Batch.OrderCount,
		CreatedAt:   out.Batch.CreatedAt,
	})
}
