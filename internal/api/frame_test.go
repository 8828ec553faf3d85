package api_test

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/golang/mock/gomock"
	"github.com/limbo/sovet/internal/api"
	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appURL = "https://sovet.example"

func frameBody(t *testing.T, fid int64, button int, input string) io.Reader {
	return jsonBody(t, api.FrameRequest{UntrustedData: &api.FrameUntrustedData{
		Fid:         fid,
		ButtonIndex: button,
		InputText:   input,
	}})
}

func frameBodyWithState(t *testing.T, fid int64, button int, state string) io.Reader {
	return jsonBody(t, api.FrameRequest{UntrustedData: &api.FrameUntrustedData{
		Fid:         fid,
		ButtonIndex: button,
		State:       []byte(state),
	}})
}

func TestFrameInitial(t *testing.T) {
	env := newTestEnv(t, api.Options{AppURL: appURL})
	rr := env.do(http.MethodGet, "/api/frame", nil, false)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.FrameResponse
	require.NoError(t, sonic.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Frames, 1)
	frame := resp.Frames[0]
	assert.Equal(t, "vNext", frame.Version)
	assert.Equal(t, appURL+"/api/frame/image", frame.Image)
	require.Len(t, frame.Buttons, 1)
	assert.Equal(t, appURL+"/api/frame", frame.Buttons[0].Target)
	assert.Equal(t, "initial", frame.State.Action)
}

func TestFrameAction(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 20:00 UTC on the 10th is already the 11th in loc
	at := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	env := newTestEnv(t, api.Options{AppURL: appURL, Location: loc, Clock: func() time.Time { return at }})
	frameUser := &entity.User{ID: "farcaster_42", StatedGoal: "grow", Niche: "productivity", Experience: entity.Intermediate}
	tipID := "tip_42_2025-03-11"
	frameTip := &entity.DailyTip{ID: tipID, Content: "Do one thing", Niche: "productivity"}

	testCases := []struct {
		Desc         string
		ExpectedCode int
		Body         func() io.Reader
		MockPrepFunc func()
		Check        func(t *testing.T, frame api.Frame)
	}{
		{
			Desc:         "get tip",
			ExpectedCode: http.StatusOK,
			Body:         func() io.Reader { return frameBody(t, 42, api.FrameButtonGetTip, "") },
			MockPrepFunc: func() {
				env.users.EXPECT().GetOrCreateFarcasterUser(gomock.Any(), "42").Return(frameUser, nil)
				env.tips.EXPECT().NewTip(gomock.Any(), frameUser, tipID).Return(frameTip, nil)
			},
			Check: func(t *testing.T, frame api.Frame) {
				assert.Equal(t, appURL+"/api/frame/image?tipId="+tipID, frame.Image)
				assert.Len(t, frame.Buttons, 2)
				require.NotNil(t, frame.Input)
				assert.Equal(t, api.FrameState{TipID: tipID, Fid: 42, Action: "view"}, frame.State)
			},
		},
		{
			Desc:         "new tip",
			ExpectedCode: http.StatusOK,
			Body:         func() io.Reader { return frameBody(t, 42, api.FrameButtonNewTip, "") },
			MockPrepFunc: func() {
				env.users.EXPECT().GetOrCreateFarcasterUser(gomock.Any(), "42").Return(frameUser, nil)
				env.tips.EXPECT().NewTip(gomock.Any(), frameUser, tipID).Return(frameTip, nil)
			},
			Check: func(t *testing.T, frame api.Frame) {
				assert.Equal(t, "view", frame.State.Action)
			},
		},
		{
			Desc:         "mark done",
			ExpectedCode: http.StatusOK,
			Body:         func() io.Reader { return frameBody(t, 42, api.FrameButtonMarkDone, "felt great") },
			MockPrepFunc: func() {
				env.users.EXPECT().GetOrCreateFarcasterUser(gomock.Any(), "42").Return(frameUser, nil)
				env.tips.EXPECT().GetTip(gomock.Any(), tipID).Return(frameTip, nil)
				env.progress.EXPECT().RecordCompletion(gomock.Any(), "farcaster_42", tipID, "felt great").
					Return(&entity.ProgressLog{ID: "log_1", UserID: "farcaster_42", TipID: tipID, ActionCompleted: true, LoggedAt: at}, nil)
				env.progress.EXPECT().GetStats(gomock.Any(), "farcaster_42").Return(entity.ProgressStats{CurrentStreak: 4}, nil)
			},
			Check: func(t *testing.T, frame api.Frame) {
				assert.Equal(t, appURL+"/api/frame/image?completed=true&streak=4", frame.Image)
				assert.Equal(t, api.FrameState{Fid: 42, Action: "completed"}, frame.State)
			},
		},
		{
			Desc:         "mark done uses viewed tip after midnight",
			ExpectedCode: http.StatusOK,
			Body: func() io.Reader {
				return frameBodyWithState(t, 42, api.FrameButtonMarkDone, `{"tipId":"tip_42_2025-03-10","fid":42,"action":"view"}`)
			},
			MockPrepFunc: func() {
				env.users.EXPECT().GetOrCreateFarcasterUser(gomock.Any(), "42").Return(frameUser, nil)
				env.tips.EXPECT().GetTip(gomock.Any(), "tip_42_2025-03-10").Return(frameTip, nil)
				env.progress.EXPECT().RecordCompletion(gomock.Any(), "farcaster_42", "tip_42_2025-03-10", "").
					Return(&entity.ProgressLog{ID: "log_2", UserID: "farcaster_42", TipID: "tip_42_2025-03-10", ActionCompleted: true, LoggedAt: at}, nil)
				env.progress.EXPECT().GetStats(gomock.Any(), "farcaster_42").Return(entity.ProgressStats{CurrentStreak: 1}, nil)
			},
		},
		{
			Desc:         "mark done with url-encoded string state",
			ExpectedCode: http.StatusOK,
			Body: func() io.Reader {
				return frameBodyWithState(t, 42, api.FrameButtonMarkDone, `"%7B%22tipId%22%3A%22tip_42_2025-03-10%22%7D"`)
			},
			MockPrepFunc: func() {
				env.users.EXPECT().GetOrCreateFarcasterUser(gomock.Any(), "42").Return(frameUser, nil)
				env.tips.EXPECT().GetTip(gomock.Any(), "tip_42_2025-03-10").Return(frameTip, nil)
				env.progress.EXPECT().RecordCompletion(gomock.Any(), "farcaster_42", "tip_42_2025-03-10", "").
					Return(&entity.ProgressLog{ID: "log_3", UserID: "farcaster_42", TipID: "tip_42_2025-03-10", ActionCompleted: true, LoggedAt: at}, nil)
				env.progress.EXPECT().GetStats(gomock.Any(), "farcaster_42").Return(entity.ProgressStats{CurrentStreak: 1}, nil)
			},
		},
		{
			Desc:         "state of another fid is ignored",
			ExpectedCode: http.StatusNotFound,
			Body: func() io.Reader {
				return frameBodyWithState(t, 42, api.FrameButtonMarkDone, `{"tipId":"tip_7_2025-03-10","fid":7}`)
			},
			MockPrepFunc: func() {
				env.users.EXPECT().GetOrCreateFarcasterUser(gomock.Any(), "42").Return(frameUser, nil)
				env.tips.EXPECT().GetTip(gomock.Any(), tipID).Return(nil, errorvalues.ErrTipNotFound)
			},
		},
		{
			Desc:         "mark done without tip of the day",
			ExpectedCode: http.StatusNotFound,
			Body:         func() io.Reader { return frameBody(t, 42, api.FrameButtonMarkDone, "") },
			MockPrepFunc: func() {
				env.users.EXPECT().GetOrCreateFarcasterUser(gomock.Any(), "42").Return(frameUser, nil)
				env.tips.EXPECT().GetTip(gomock.Any(), tipID).Return(nil, errorvalues.ErrTipNotFound)
			},
		},
		{
			Desc:         "mark done store unavailable",
			ExpectedCode: http.StatusServiceUnavailable,
			Body:         func() io.Reader { return frameBody(t, 42, api.FrameButtonMarkDone, "") },
			MockPrepFunc: func() {
				env.users.EXPECT().GetOrCreateFarcasterUser(gomock.Any(), "42").Return(frameUser, nil)
				env.tips.EXPECT().GetTip(gomock.Any(), tipID).Return(frameTip, nil)
				env.progress.EXPECT().RecordCompletion(gomock.Any(), "farcaster_42", tipID, "").Return(nil, errorvalues.ErrStoreUnavailable)
			},
		},
		{
			Desc:         "user resolution error",
			ExpectedCode: http.StatusInternalServerError,
			Body:         func() io.Reader { return frameBody(t, 42, api.FrameButtonGetTip, "") },
			MockPrepFunc: func() {
				env.users.EXPECT().GetOrCreateFarcasterUser(gomock.Any(), "42").Return(nil, errors.New("db down"))
			},
		},
		{
			Desc:         "unknown button",
			ExpectedCode: http.StatusBadRequest,
			Body:         func() io.Reader { return frameBody(t, 42, 9, "") },
			MockPrepFunc: func() {},
		},
		{
			Desc:         "missing untrusted data",
			ExpectedCode: http.StatusBadRequest,
			Body:         func() io.Reader { return bytes.NewReader([]byte(`{}`)) },
			MockPrepFunc: func() {},
		},
		{
			Desc:         "invalid fid",
			ExpectedCode: http.StatusBadRequest,
			Body:         func() io.Reader { return frameBody(t, 0, api.FrameButtonGetTip, "") },
			MockPrepFunc: func() {},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := env.do(http.MethodPost, "/api/frame", tc.Body(), false)
			require.Equal(t, tc.ExpectedCode, rr.Code)
			if tc.Check == nil {
				return
			}
			var resp api.FrameResponse
			require.NoError(t, sonic.Unmarshal(rr.Body.Bytes(), &resp))
			require.Len(t, resp.Frames, 1)
			tc.Check(t, resp.Frames[0])
		})
	}
}

func TestFrameRateLimit(t *testing.T) {
	env := newTestEnv(t, api.Options{AppURL: appURL, FrameRPS: 0.001, FrameBurst: 2})
	for range 2 {
		rr := env.do(http.MethodGet, "/api/frame", nil, false)
		assert.Equal(t, http.StatusOK, rr.Code)
	}
	rr := env.do(http.MethodGet, "/api/frame", nil, false)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	rr = env.do(http.MethodGet, "/metrics", nil, false)
	assert.Contains(t, rr.Body.String(), "frame_rate_limited_total 1")
}
