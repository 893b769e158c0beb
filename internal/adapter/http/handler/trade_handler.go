package handler

import (
	"context"
	"strings"

	"multiwallet-trader/internal/adapter/http/dto"
	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports"
	"multiwallet-trader/pkg/apperror"
	"multiwallet-trader/pkg/response"

	"github.com/gin-gonic/gin"
)

// TradeHandler handles trading, transfer and transaction status endpoints.
type TradeHandler struct {
	trades ports.TradeService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(trades ports.TradeService) *TradeHandler {
	return &TradeHandler{trades: trades}
}

// Buy handles POST /api/v1/trades/buy.
func (h *TradeHandler) Buy(c *gin.Context) {
	var req dto.BatchBuyRequest
	if !bind(c, &req) {
		return
	}

	resp, err := h.trades.BatchBuy(c.Request.Context(), ports.BatchBuyRequest{
		Token:       req.Token,
		Wallets:     req.Wallets,
		Amount:      req.Amount,
		Percent:     req.Percent,
		Overrides:   toOverrides(req.Overrides),
		Concurrency: req.Concurrency,
		Sequential:  req.Sequential,
		Slippage:    req.Slippage,
		PriorityFee: req.PriorityFee,
		Pool:        req.Pool,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// Sell handles POST /api/v1/trades/sell.
func (h *TradeHandler) Sell(c *gin.Context) {
	var req dto.BatchSellRequest
	if !bind(c, &req) {
		return
	}

	resp, err := h.trades.BatchSell(c.Request.Context(), ports.BatchSellRequest{
		Token:       req.Token,
		Wallets:     req.Wallets,
		Tokens:      req.Tokens,
		Percent:     req.Percent,
		Overrides:   toOverrides(req.Overrides),
		Concurrency: req.Concurrency,
		Sequential:  req.Sequential,
		Slippage:    req.Slippage,
		PriorityFee: req.PriorityFee,
		Pool:        req.Pool,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// BuyOne handles POST /api/v1/trades/buy-one.
func (h *TradeHandler) BuyOne(c *gin.Context) {
	h.single(c, h.trades.BuyOne)
}

// SellOne handles POST /api/v1/trades/sell-one.
func (h *TradeHandler) SellOne(c *gin.Context) {
	h.single(c, h.trades.SellOne)
}

type singleFunc func(ctx context.Context, req ports.SingleTradeRequest) (*domain.TradeResult, error)

func (h *TradeHandler) single(c *gin.Context, fn singleFunc) {
	var req dto.SingleTradeRequest
	if !bind(c, &req) {
		return
	}

	res, err := fn(c.Request.Context(), ports.SingleTradeRequest{
		PublicKey:   req.PublicKey,
		Token:       req.Token,
		Amount:      req.Amount,
		Percent:     req.Percent,
		Slippage:    req.Slippage,
		PriorityFee: req.PriorityFee,
		Pool:        req.Pool,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// CollectFees handles POST /api/v1/trades/collect-fees. The body is optional.
func (h *TradeHandler) CollectFees(c *gin.Context) {
	var req dto.CollectFeesRequest
	if c.Request.ContentLength != 0 && !bind(c, &req) {
		return
	}

	res, err := h.trades.CollectFees(c.Request.Context(), req.PriorityFee)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Create handles POST /api/v1/trades/create.
func (h *TradeHandler) Create(c *gin.Context) {
	var req dto.CreateTokenRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.trades.CreateToken(c.Request.Context(), ports.CreateTokenRequest{
		Name:        req.Name,
		Symbol:      req.Symbol,
		MetadataURI: req.MetadataURI,
		DevBuy:      req.DevBuy,
		Slippage:    req.Slippage,
		PriorityFee: req.PriorityFee,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// TransferNative handles POST /api/v1/transfers/native.
func (h *TradeHandler) TransferNative(c *gin.Context) {
	var req dto.TransferRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.trades.TransferNative(c.Request.Context(), ports.TransferRequest{
		From:   req.From,
		To:     req.To,
		Amount: req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// SweepNative handles POST /api/v1/sweeps/native.
func (h *TradeHandler) SweepNative(c *gin.Context) {
	var req dto.SweepRequest
	if !bind(c, &req) {
		return
	}

	resp, err := h.trades.SweepNative(c.Request.Context(), ports.SweepRequest{To: req.To, Keep: req.Keep})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// TransferToken handles POST /api/v1/transfers/token.
func (h *TradeHandler) TransferToken(c *gin.Context) {
	var req dto.TokenTransferRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.trades.TransferToken(c.Request.Context(), ports.TokenTransferRequest{
		From:   req.From,
		To:     req.To,
		Mint:   req.Mint,
		Amount: req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// SweepToken handles POST /api/v1/sweeps/token.
func (h *TradeHandler) SweepToken(c *gin.Context) {
	var req dto.TokenSweepRequest
	if !bind(c, &req) {
		return
	}

	resp, err := h.trades.SweepToken(c.Request.Context(), ports.TokenSweepRequest{To: req.To, Mint: req.Mint})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// TokenInfo handles GET /api/v1/tokens/:mint.
func (h *TradeHandler) TokenInfo(c *gin.Context) {
	mint := strings.TrimSpace(c.Param("mint"))
	if !dto.IsBase58(mint) {
		response.Error(c, apperror.Validation("invalid mint"))
		return
	}

	info, err := h.trades.TokenInfo(c.Request.Context(), mint)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, info)
}

// TxStatus handles GET /api/v1/tx/:signature.
func (h *TradeHandler) TxStatus(c *gin.Context) {
	sig := strings.TrimSpace(c.Param("signature"))
	if !dto.IsBase58(sig) {
		response.Error(c, apperror.Validation("invalid signature"))
		return
	}

	st, err := h.trades.TxStatus(c.Request.Context(), sig)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"found": st.Found(), "status": st})
}

// bind decodes and sanitizes the JSON body into req, answering 400 on failure.
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return false
	}
	dto.SanitizeStruct(req)
	return true
}

func toOverrides(items []dto.TradeOverrideItem) []ports.TradeOverride {
	if len(items) == 0 {
		return nil
	}
	out := make([]ports.TradeOverride, 0, len(items))
	for _, o := range items {
		out = append(out, ports.TradeOverride{
			PublicKey:   o.PublicKey,
			BuyAmount:   o.BuyAmount,
			BuyPercent:  o.BuyPercent,
			SellPercent: o.SellPercent,
		})
	}
	return out
}
