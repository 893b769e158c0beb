package handler

import (
	"strings"

	"multiwallet-trader/internal/adapter/http/dto"
	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports"
	"multiwallet-trader/pkg/apperror"
	"multiwallet-trader/pkg/response"

	"github.com/gin-gonic/gin"
)

// BalanceHandler serves balance snapshots and the state document.
type BalanceHandler struct {
	balances ports.BalanceReader
	state    ports.StateService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balances ports.BalanceReader, state ports.StateService) *BalanceHandler {
	return &BalanceHandler{balances: balances, state: state}
}

// Balances handles GET /api/v1/balances?token=&wallets=a,b.
// Without token only native balances are read; a wallets list bypasses the cache.
func (h *BalanceHandler) Balances(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token != "" && !dto.IsBase58(token) {
		response.Error(c, apperror.Validation("invalid token address"))
		return
	}

	var subset []string
	for _, id := range strings.Split(c.Query("wallets"), ",") {
		if id = strings.TrimSpace(id); id == "" {
			continue
		}
		if !dto.IsBase58(id) {
			response.Error(c, apperror.Validation("invalid wallet identity: "+id))
			return
		}
		subset = append(subset, id)
	}

	ctx := c.Request.Context()
	if len(subset) > 0 {
		snap, err := h.balances.GetSubset(ctx, token, subset)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, snap)
		return
	}

	snap, err := h.balances.Get(ctx, token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, snap)
}

// GetState handles GET /api/v1/state.
func (h *BalanceHandler) GetState(c *gin.Context) {
	st, err := h.state.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, st)
}

// PatchState handles PATCH /api/v1/state.
func (h *BalanceHandler) PatchState(c *gin.Context) {
	var req dto.StatePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	if req.Mint != nil && *req.Mint != "" && !dto.IsBase58(*req.Mint) {
		response.Error(c, apperror.Validation("invalid mint address"))
		return
	}

	patch := domain.StatePatch{Mint: req.Mint}
	if req.RecentMint != nil {
		patch.RecentMint = &domain.RecentMint{
			Mint:   req.RecentMint.Mint,
			Name:   req.RecentMint.Name,
			Symbol: req.RecentMint.Symbol,
		}
	}

	st, err := h.state.Update(c.Request.Context(), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, st)
}
