package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/internal/payment"
	"github.com/limbo/sovet/internal/service"
	"github.com/limbo/sovet/pkg/entity"
	"github.com/limbo/sovet/pkg/httputil"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

type OnboardingResponse struct {
	User  *entity.User     `json:"user"`
	Tip   *entity.DailyTip `json:"tip"`
	Token string           `json:"token"`
}

type CompleteTipRequest struct {
	Notes string `json:"notes"`
}

type CompleteTipResponse struct {
	Log   *entity.ProgressLog   `json:"log"`
	Stats *entity.ProgressStats `json:"stats,omitempty"`
}

type ProgressLogsResponse struct {
	UserID string                `json:"user_id"`
	Logs   []*entity.ProgressLog `json:"logs"`
}

type SubscribeRequest struct {
	Type        entity.SubscriptionType `json:"type"`
	FromAddress string                  `json:"from_address"`
}

type UnlockTipRequest struct {
	FromAddress string `json:"from_address"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   s.clock().UTC(),
	})
}

func (s *Server) Onboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req service.OnboardingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("onboarding error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	user, err := s.userService.Onboard(ctx, &req)
	if err != nil {
		if errors.Is(err, errorvalues.ErrValidation) {
			logger.Warn("onboarding error: invalid profile", zap.Error(err))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid profile", err)
			return
		}
		logger.Error("onboarding error: service error", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during onboarding", nil)
		return
	}
	tip, err := s.tipService.NewTip(ctx, user, "")
	if err != nil {
		logger.Error("onboarding error: generating first tip", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error generating first tip", nil)
		return
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("onboarding error: generating token error", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, OnboardingResponse{
		User:  user,
		Tip:   tip,
		Token: token,
	})
	logger.Info("user onboarded", zap.String("uid", user.ID), zap.String("niche", user.Niche))
}

func (s *Server) NewTip(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Warn("new tip error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	allowed, err := s.subscriptionService.HasAccess(ctx, uid)
	if err != nil {
		logger.Error("new tip error: checking access", zap.Error(err))
		writeStoreError(w, err, "error checking access")
		return
	}
	if !allowed {
		logger.Info("new tip rejected: no access")
		httputil.WriteErrorResponse(w, http.StatusPaymentRequired, "subscription required", nil)
		return
	}
	user, err := s.userService.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user not found", nil)
			return
		}
		logger.Error("new tip error: searching user", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while searching for user", nil)
		return
	}
	tip, err := s.tipService.NewTip(ctx, user, "")
	if err != nil {
		logger.Error("new tip error: service error", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error generating tip", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, tip)
	logger.Info("tip generated", zap.String("tip_id", tip.ID))
}

func (s *Server) GetTip(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	tip, err := s.tipService.GetTip(ctx, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTipNotFound):
			httputil.WriteErrorResponse(w, http.StatusNotFound, "tip not found", nil)
		case errors.Is(err, errorvalues.ErrInvalidIdentifier):
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid tip id", nil)
		default:
			logger.Error("get tip error: service error", zap.Error(err))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting tip", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, tip)
}

func (s *Server) CompleteTip(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Warn("complete tip error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CompleteTipRequest
	if err = httputil.DecodeJSON(r, &req); err != nil && !errors.Is(err, httputil.ErrEmptyBody) {
		logger.Warn("complete tip error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	tipID := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	// The log itself doesn't know tips, so unknown ids are stopped here
	if _, err = s.tipService.GetTip(ctx, tipID); err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTipNotFound):
			httputil.WriteErrorResponse(w, http.StatusNotFound, "tip not found", nil)
		case errors.Is(err, errorvalues.ErrInvalidIdentifier):
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid tip id", nil)
		default:
			logger.Error("complete tip error: searching tip", zap.Error(err))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting tip", nil)
		}
		return
	}
	record, err := s.progressService.RecordCompletion(ctx, uid, tipID, req.Notes)
	if err != nil {
		logger.Error("complete tip error: recording completion", zap.Error(err))
		writeStoreError(w, err, "error recording completion")
		return
	}
	s.metrics.CompletionRecorded()
	resp := CompleteTipResponse{Log: record}
	stats, err := s.progressService.GetStats(ctx, uid)
	if err != nil {
		logger.Warn("completion recorded but stats unavailable", zap.Error(err))
	} else {
		resp.Stats = &stats
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, resp)
	logger.Info("tip completed", zap.String("tip_id", tipID), zap.String("log_id", record.ID))
}

func (s *Server) GetProgressLogs(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	logs, err := s.progressService.ListRecords(ctx, uid)
	if err != nil {
		logger.Error("getting progress logs error", zap.Error(err))
		writeStoreError(w, err, "error while getting progress logs")
		return
	}
	if logs == nil {
		logs = []*entity.ProgressLog{}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, ProgressLogsResponse{
		UserID: uid,
		Logs:   logs,
	})
}

func (s *Server) GetProgressStats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	stats, err := s.progressService.GetStats(ctx, uid)
	if err != nil {
		logger.Error("getting progress stats error", zap.Error(err))
		writeStoreError(w, err, "error while getting progress stats")
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
}

func (s *Server) Subscribe(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req SubscribeRequest
	if err = httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("subscribe error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*30)
	defer cancel()
	sub, err := s.subscriptionService.Subscribe(ctx, &service.SubscribeRequest{
		UserID:      uid,
		Type:        req.Type,
		FromAddress: req.FromAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation), errors.Is(err, errorvalues.ErrUnknownSubscriptionType):
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid subscription request", err)
		case errors.Is(err, errorvalues.ErrPaymentFailed):
			s.metrics.PaymentProcessed(false)
			logger.Info("subscription payment failed", zap.Error(err))
			httputil.WriteErrorResponse(w, http.StatusPaymentRequired, "payment failed", err)
		default:
			logger.Error("subscribe error: service error", zap.Error(err))
			writeStoreError(w, err, "internal error while subscribing")
		}
		return
	}
	s.metrics.PaymentProcessed(true)
	httputil.WriteJSONResponse(w, http.StatusCreated, sub)
	logger.Info("subscribed", zap.String("type", string(sub.Type)), zap.String("tx_hash", sub.TxHash))
}

// UnlockTip pays for a single tip at its difficulty's price.
func (s *Server) UnlockTip(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req UnlockTipRequest
	if err = httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("unlock tip error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*30)
	defer cancel()
	tip, err := s.tipService.GetTip(ctx, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTipNotFound):
			httputil.WriteErrorResponse(w, http.StatusNotFound, "tip not found", nil)
		case errors.Is(err, errorvalues.ErrInvalidIdentifier):
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid tip id", nil)
		default:
			logger.Error("unlock tip error: searching tip", zap.Error(err))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting tip", nil)
		}
		return
	}
	unlock, err := s.subscriptionService.UnlockTip(ctx, &service.UnlockTipRequest{
		UserID:      uid,
		FromAddress: req.FromAddress,
	}, tip)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid unlock request", err)
		case errors.Is(err, errorvalues.ErrPaymentFailed), errors.Is(err, errorvalues.ErrPaymentNotConfirmed):
			s.metrics.PaymentProcessed(false)
			logger.Info("tip payment failed", zap.Error(err))
			httputil.WriteErrorResponse(w, http.StatusPaymentRequired, "payment failed", err)
		default:
			logger.Error("unlock tip error: service error", zap.Error(err))
			writeStoreError(w, err, "internal error while unlocking tip")
		}
		return
	}
	s.metrics.PaymentProcessed(true)
	httputil.WriteJSONResponse(w, http.StatusOK, unlock)
	logger.Info("tip unlocked", zap.String("tip_id", unlock.TipID), zap.String("tx_hash", unlock.TxHash))
}

func (s *Server) GetSubscription(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	status, err := s.subscriptionService.Status(ctx, uid)
	if err != nil {
		logger.Error("getting subscription error", zap.Error(err))
		writeStoreError(w, err, "error while getting subscription")
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, status)
}

func (s *Server) GetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	status, err := s.subscriptionService.TxStatus(ctx, chi.URLParam(r, "tx"))
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTxNotFound):
			httputil.WriteErrorResponse(w, http.StatusNotFound, "transaction not found", nil)
		case errors.Is(err, errorvalues.ErrInvalidIdentifier):
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid transaction hash", nil)
		default:
			logger.Error("getting payment status error", zap.Error(err))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting payment status", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, status)
}

// PaymentQR renders an ethereum payment uri for amount as a PNG.
func (s *Server) PaymentQR(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	if s.paymentAddress == "" {
		httputil.WriteErrorResponse(w, http.StatusServiceUnavailable, "payments are not configured", nil)
		return
	}
	amount := r.URL.Query().Get("amount")
	if amount == "" {
		amount = payment.SingleTipPrice
	}
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil || value <= 0 {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid amount", nil)
		return
	}
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size < 128 || size > 1024 {
		size = 256
	}
	uri := fmt.Sprintf("ethereum:%s?value=%s", s.paymentAddress, strconv.FormatFloat(value, 'f', -1, 64))
	png, err := qrcode.Encode(uri, qrcode.Medium, size)
	if err != nil {
		logger.Error("encoding payment qr error", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error encoding qr code", nil)
		return
	}
	httputil.WriteBlob(w, "image/png", png)
}

func writeStoreError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, errorvalues.ErrStoreUnavailable) {
		httputil.WriteErrorResponse(w, http.StatusServiceUnavailable, "storage unavailable", nil)
		return
	}
	httputil.WriteErrorResponse(w, http.StatusInternalServerError, message, nil)
}
