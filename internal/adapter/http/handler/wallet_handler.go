package handler

import (
	"multiwallet-trader/internal/adapter/http/dto"
	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports"
	"multiwallet-trader/pkg/apperror"
	"multiwallet-trader/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet registry endpoints.
type WalletHandler struct {
	registry   ports.WalletRegistry
	defaultBuy float64
}

// NewWalletHandler creates a new WalletHandler. defaultBuy seeds generated wallets
// when the request does not name an amount.
func NewWalletHandler(registry ports.WalletRegistry, defaultBuy float64) *WalletHandler {
	return &WalletHandler{registry: registry, defaultBuy: defaultBuy}
}

// List handles GET /api/v1/wallets.
func (h *WalletHandler) List(c *gin.Context) {
	doc, err := h.registry.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	buyers := doc.Buyers
	if buyers == nil {
		buyers = []domain.WalletRecord{}
	}
	count := len(buyers)
	if doc.Dev != nil {
		count++
	}
	response.OK(c, dto.WalletListResponse{Dev: doc.Dev, Buyers: buyers, Count: count})
}

// Generate handles POST /api/v1/wallets/generate.
func (h *WalletHandler) Generate(c *gin.Context) {
	var req dto.GenerateWalletsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	buy := h.defaultBuy
	if req.BuyAmount != nil {
		buy = *req.BuyAmount
	}

	created, err := h.registry.Generate(c.Request.Context(), req.Count, buy, req.Prefix)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Import handles POST /api/v1/wallets/import.
func (h *WalletHandler) Import(c *gin.Context) {
	var req dto.ImportWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	w, err := h.registry.AddFromSecret(c.Request.Context(), req.Secret, req.Name, req.BuyAmount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, w)
}

// Remove handles DELETE /api/v1/wallets/:identity.
func (h *WalletHandler) Remove(c *gin.Context) {
	identity, ok := identityParam(c)
	if !ok {
		return
	}
	if err := h.registry.Remove(c.Request.Context(), identity); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"removed": identity})
}

// Rename handles PUT /api/v1/wallets/:identity/name.
func (h *WalletHandler) Rename(c *gin.Context) {
	identity, ok := identityParam(c)
	if !ok {
		return
	}
	var req dto.RenameWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	w, err := h.registry.Rename(c.Request.Context(), identity, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, w)
}

// UpdateOverrides handles PUT /api/v1/wallets/overrides.
func (h *WalletHandler) UpdateOverrides(c *gin.Context) {
	var req dto.UpdateOverridesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	updates := make([]domain.OverrideUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		updates = append(updates, domain.OverrideUpdate{
			PublicKey:        u.PublicKey,
			BuyAmountFixed:   u.BuyAmountFixed,
			BuyAmountPercent: u.BuyAmountPercent,
			SellPercent:      u.SellPercent,
		})
	}

	n, err := h.registry.UpdateOverrides(c.Request.Context(), updates)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.UpdatedResponse{Updated: n})
}

// Export handles POST /api/v1/wallets/:identity/export.
func (h *WalletHandler) Export(c *gin.Context) {
	identity, ok := identityParam(c)
	if !ok {
		return
	}
	secret, err := h.registry.ExportSecret(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	response.OK(c, dto.ExportResponse{PublicKey: identity, SecretKey: secret})
}

// InitDev handles POST /api/v1/wallets/dev/init.
func (h *WalletHandler) InitDev(c *gin.Context) {
	dev, created, err := h.registry.InitDev(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if created {
		response.Created(c, dto.InitDevResponse{Dev: dev, Created: true})
		return
	}
	response.OK(c, dto.InitDevResponse{Dev: dev})
}

// PromoteDev handles POST /api/v1/wallets/dev/promote.
func (h *WalletHandler) PromoteDev(c *gin.Context) {
	var req dto.PromoteDevRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	dev, err := h.registry.PromoteToDev(c.Request.Context(), req.PublicKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dev)
}

func identityParam(c *gin.Context) (string, bool) {
	identity := c.Param("identity")
	if !dto.IsBase58(identity) {
		response.Error(c, apperror.Validation("invalid wallet identity"))
		return "", false
	}
	return identity, true
}
