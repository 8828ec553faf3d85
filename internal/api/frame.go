package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/internal/service"
	"github.com/limbo/sovet/pkg/httputil"
	"go.uber.org/zap"
)

const frameVersion = "vNext"

// Frame buttons as numbered by the feed client
const (
	FrameButtonGetTip   = 1
	FrameButtonMarkDone = 2
	FrameButtonNewTip   = 3
)

type FrameRequest struct {
	UntrustedData *FrameUntrustedData `json:"untrustedData"`
}

type FrameUntrustedData struct {
	Fid         int64  `json:"fid"`
	ButtonIndex int    `json:"buttonIndex"`
	InputText   string `json:"inputText"`
	// State echoes the state of the frame the button was pressed on. Clients
	// send it either as an object or as a (possibly url-encoded) JSON string.
	State json.RawMessage `json:"state,omitempty"`
}

type FrameButton struct {
	Label  string `json:"label"`
	Action string `json:"action"`
	Target string `json:"target"`
}

type FrameInput struct {
	Text string `json:"text"`
}

type FrameState struct {
	TipID  string `json:"tipId,omitempty"`
	Fid    int64  `json:"fid,omitempty"`
	Action string `json:"action"`
}

type Frame struct {
	Version string        `json:"version"`
	Image   string        `json:"image"`
	Buttons []FrameButton `json:"buttons"`
	Input   *FrameInput   `json:"input,omitempty"`
	State   FrameState    `json:"state"`
}

type FrameResponse struct {
	Frames []Frame `json:"frames"`
}

func (s *Server) FrameInitial(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, FrameResponse{Frames: []Frame{{
		Version: frameVersion,
		Image:   s.frameImage(nil),
		Buttons: []FrameButton{s.frameButton("Get Today's Tip 💡")},
		State:   FrameState{Action: "initial"},
	}}})
}

func (s *Server) FrameAction(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req FrameRequest
	if err := httputil.DecodeJSON(r, &req); err != nil || req.UntrustedData == nil {
		logger.Warn("frame error: invalid frame data")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid frame data", nil)
		return
	}
	data := req.UntrustedData
	if data.Fid <= 0 {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid frame data", nil)
		return
	}
	logger = logger.With(zap.Int64("fid", data.Fid), zap.Int("button", data.ButtonIndex))
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()

	switch data.ButtonIndex {
	case FrameButtonGetTip, FrameButtonNewTip:
		s.frameTip(ctx, w, logger, data.Fid)
	case FrameButtonMarkDone:
		s.frameMarkDone(ctx, w, logger, data)
	default:
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid action", nil)
	}
}

func (s *Server) frameTip(ctx context.Context, w http.ResponseWriter, logger *zap.Logger, fid int64) {
	fidStr := strconv.FormatInt(fid, 10)
	user, err := s.userService.GetOrCreateFarcasterUser(ctx, fidStr)
	if err != nil {
		logger.Error("frame error: resolving user", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to generate tip", nil)
		return
	}
	tipID := service.FrameTipID(fidStr, s.clock().In(s.loc))
	tip, err := s.tipService.NewTip(ctx, user, tipID)
	if err != nil {
		logger.Error("frame error: generating tip", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to generate tip", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, FrameResponse{Frames: []Frame{{
		Version: frameVersion,
		Image:   s.frameImage(url.Values{"tipId": {tip.ID}}),
		Buttons: []FrameButton{
			s.frameButton("Mark as Done ✅"),
			s.frameButton("Get New Tip 🔄"),
		},
		Input: &FrameInput{Text: "Optional notes..."},
		State: FrameState{TipID: tip.ID, Fid: fid, Action: "view"},
	}}})
	logger.Info("frame tip served", zap.String("tip_id", tip.ID))
}

func (s *Server) frameMarkDone(ctx context.Context, w http.ResponseWriter, logger *zap.Logger, data *FrameUntrustedData) {
	fidStr := strconv.FormatInt(data.Fid, 10)
	user, err := s.userService.GetOrCreateFarcasterUser(ctx, fidStr)
	if err != nil {
		logger.Error("frame error: resolving user", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to mark tip done", nil)
		return
	}
	// The viewed tip wins over today's id, so a tip seen before midnight can
	// still be completed after it.
	tipID := service.FrameTipID(fidStr, s.clock().In(s.loc))
	if state, ok := parseFrameState(data.State); ok && state.TipID != "" && (state.Fid == 0 || state.Fid == data.Fid) {
		tipID = state.TipID
	}
	if _, err = s.tipService.GetTip(ctx, tipID); err != nil {
		if errors.Is(err, errorvalues.ErrTipNotFound) {
			httputil.WriteErrorResponse(w, http.StatusNotFound, "no tip to complete today", nil)
			return
		}
		logger.Error("frame error: searching tip", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to mark tip done", nil)
		return
	}
	record, err := s.progressService.RecordCompletion(ctx, user.ID, tipID, data.InputText)
	if err != nil {
		logger.Error("frame error: recording completion", zap.Error(err))
		writeStoreError(w, err, "failed to mark tip done")
		return
	}
	s.metrics.CompletionRecorded()
	query := url.Values{"completed": {"true"}}
	if stats, err := s.progressService.GetStats(ctx, user.ID); err == nil {
		query.Set("streak", strconv.Itoa(stats.CurrentStreak))
	} else {
		logger.Warn("frame: stats unavailable after completion", zap.Error(err))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, FrameResponse{Frames: []Frame{{
		Version: frameVersion,
		Image:   s.frameImage(query),
		Buttons: []FrameButton{s.frameButton("Get New Tip 🔄")},
		State:   FrameState{Fid: data.Fid, Action: "completed"},
	}}})
	logger.Info("frame tip completed", zap.String("tip_id", tipID), zap.String("log_id", record.ID))
}

func parseFrameState(raw json.RawMessage) (FrameState, bool) {
	var state FrameState
	if len(raw) == 0 {
		return state, false
	}
	if raw[0] == '"' {
		var encoded string
		if err := sonic.Unmarshal(raw, &encoded); err != nil || encoded == "" {
			return state, false
		}
		if unescaped, err := url.QueryUnescape(encoded); err == nil {
			encoded = unescaped
		}
		raw = json.RawMessage(encoded)
	}
	if err := sonic.Unmarshal(raw, &state); err != nil {
		return state, false
	}
	return state, true
}

func (s *Server) frameButton(label string) FrameButton {
	return FrameButton{
		Label:  label,
		Action: "post",
		Target: s.appURL + "/api/frame",
	}
}

func (s *Server) frameImage(query url.Values) string {
	image := s.appURL + "/api/frame/image"
	if len(query) > 0 {
		image += "?" + query.Encode()
	}
	return image
}
