package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/leandro-lugaresi/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/repository"
	"github.com/stadtwache/stadtwache/router/consts"
	"github.com/stadtwache/stadtwache/service/authn"
	"github.com/stadtwache/stadtwache/service/presence"
)

// stubRepo 必要なメソッドのみを上書きするリポジトリスタブ
type stubRepo struct {
	repository.Repository
	users   []*model.User
	reports []*model.Report
}

func (r *stubRepo) GetUsers(_ bool) ([]*model.User, error) {
	return r.users, nil
}

func (r *stubRepo) GetUserByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubRepo) CreateMessage(args repository.CreateMessageArgs) (*model.Message, error) {
	return &model.Message{
		ID:         uuid.Must(uuid.NewV4()),
		Content:    args.Content,
		SenderID:   args.SenderID,
		SenderName: args.SenderName,
		Channel:    args.Channel,
	}, nil
}

func (r *stubRepo) RecordLocation(userID uuid.UUID, loc model.Coordinates) (*model.LocationLog, error) {
	return &model.LocationLog{ID: uuid.Must(uuid.NewV4()), UserID: userID, Location: loc}, nil
}

func (r *stubRepo) UpdateIncident(id uuid.UUID, args repository.UpdateIncidentArgs) (*model.Incident, error) {
	if args.Status != nil && !model.ValidIncidentStatus(*args.Status) {
		return nil, repository.ArgError("status", "invalid status")
	}
	return &model.Incident{ID: id}, nil
}

func (r *stubRepo) GetReports(authorID uuid.UUID) ([]*model.Report, error) {
	if authorID == uuid.Nil {
		return r.reports, nil
	}
	result := make([]*model.Report, 0)
	for _, rep := range r.reports {
		if rep.AuthorID == authorID {
			result = append(result, rep)
		}
	}
	return result, nil
}

func newTestHandlers(repo repository.Repository) *Handlers {
	h := hub.New()
	return &Handlers{
		Repo:     repo,
		Presence: presence.NewManager(h, zap.NewNop(), 0),
		Authn:    authn.NewService("test-secret", 0),
		Logger:   zap.NewNop(),
		Version:  "test",
	}
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var req *http.Request
	if len(body) > 0 {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	return he.Code
}

func TestHandlers_Login(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(nil)
	hash, err := h.Authn.HashPassword("streng-geheim")
	require.NoError(t, err)
	h.Repo = &stubRepo{users: []*model.User{{
		ID:       uuid.Must(uuid.NewV4()),
		Email:    "wache@example.com",
		Name:     "wache1",
		Password: hash,
		Role:     model.RolePolice,
		IsActive: true,
	}}}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"wache@example.com","password":"streng-geheim"}`)
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "access_token")
		assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"wache@example.com","password":"falsch"}`)
		err := h.Login(c)
		assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, err))
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"unbekannt@example.com","password":"egal"}`)
		err := h.Login(c)
		assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, err))
	})

	t.Run("invalid body", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"keine-mail"}`)
		err := h.Login(c)
		assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
	})
}

func TestHandlers_Presence(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(nil)
	me := &model.User{ID: uuid.Must(uuid.NewV4()), Name: "wache1", Role: model.RolePolice, IsActive: true}

	c, rec := newTestContext(t, http.MethodPost, "/api/users/heartbeat", "")
	c.Set(consts.KeyUser, me)
	require.NoError(t, h.PostHeartbeat(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newTestContext(t, http.MethodGet, "/api/users/online", "")
	c.Set(consts.KeyUser, me)
	require.NoError(t, h.GetOnlineUsers(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), me.ID.String())

	c, rec = newTestContext(t, http.MethodPost, "/api/users/logout", "")
	c.Set(consts.KeyUser, me)
	require.NoError(t, h.PostLogout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, h.Presence.IsOnline(me.ID))
}

func TestHandlers_WriteRefreshesPresence(t *testing.T) {
	t.Parallel()

	me := &model.User{ID: uuid.Must(uuid.NewV4()), Name: "wache1", Role: model.RolePolice, IsActive: true}
	h := newTestHandlers(&stubRepo{})

	lastSeen := func() time.Time {
		online, _ := h.Presence.Snapshot()
		for _, u := range online {
			if u.UserID == me.ID {
				return u.LastSeen
			}
		}
		require.FailNow(t, "user is not online")
		return time.Time{}
	}

	h.Presence.MarkOnline(me.ID, me.Name)
	before := lastSeen()

	time.Sleep(5 * time.Millisecond)
	c, rec := newTestContext(t, http.MethodPost, "/api/messages", `{"content":"Streife beendet"}`)
	c.Set(consts.KeyUser, me)
	require.NoError(t, h.PostMessage(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	afterMessage := lastSeen()
	assert.True(t, afterMessage.After(before))

	time.Sleep(5 * time.Millisecond)
	c, rec = newTestContext(t, http.MethodPost, "/api/locations/update", `{"location":{"lat":52.52,"lng":13.405}}`)
	c.Set(consts.KeyUser, me)
	require.NoError(t, h.PostLocationUpdate(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, lastSeen().After(afterMessage))

	// 未登録ユーザーの書き込みは在席レコードを生成しない
	other := &model.User{ID: uuid.Must(uuid.NewV4()), Name: "wache2", Role: model.RolePolice, IsActive: true}
	c, _ = newTestContext(t, http.MethodPost, "/api/messages", `{"content":"hallo"}`)
	c.Set(consts.KeyUser, other)
	require.NoError(t, h.PostMessage(c))
	assert.False(t, h.Presence.IsOnline(other.ID))
}

func TestHandlers_UpdateIncident(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(&stubRepo{})
	me := &model.User{ID: uuid.Must(uuid.NewV4()), Name: "wache1", Role: model.RolePolice, IsActive: true}
	id := uuid.Must(uuid.NewV4())

	t.Run("invalid status", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestContext(t, http.MethodPut, "/api/incidents/"+id.String(), `{"status":"erledigt"}`)
		c.SetParamNames("incidentID")
		c.SetParamValues(id.String())
		c.Set(consts.KeyUser, me)
		err := h.UpdateIncident(c)
		assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
	})

	t.Run("valid status", func(t *testing.T) {
		t.Parallel()
		c, rec := newTestContext(t, http.MethodPut, "/api/incidents/"+id.String(), `{"status":"in_progress"}`)
		c.SetParamNames("incidentID")
		c.SetParamValues(id.String())
		c.Set(consts.KeyUser, me)
		require.NoError(t, h.UpdateIncident(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandlers_GetUsersByStatus(t *testing.T) {
	t.Parallel()

	online := &model.User{ID: uuid.Must(uuid.NewV4()), Name: "a", WorkStatus: "Streife", Role: model.RolePolice}
	offline := &model.User{ID: uuid.Must(uuid.NewV4()), Name: "b", WorkStatus: "Pause", Role: model.RolePolice}
	h := newTestHandlers(&stubRepo{users: []*model.User{online, offline}})
	h.Presence.MarkOnline(online.ID, online.Name)

	c, rec := newTestContext(t, http.MethodGet, "/api/users/by-status", "")
	c.Set(consts.KeyUser, online)
	require.NoError(t, h.GetUsersByStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Streife"`)
	assert.Contains(t, rec.Body.String(), `"Pause"`)
	assert.Contains(t, rec.Body.String(), `"online_status":"Online"`)
	assert.Contains(t, rec.Body.String(), `"online_status":"Offline"`)
}

func TestHandlers_GetUsersRequiresAdmin(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(&stubRepo{})
	c, _ := newTestContext(t, http.MethodGet, "/api/users", "")
	c.Set(consts.KeyUser, &model.User{ID: uuid.Must(uuid.NewV4()), Role: model.RolePolice})

	err := h.GetUsers(c)
	assert.Equal(t, http.StatusForbidden, httpErrorCode(t, err))
}

func TestHandlers_GetReportFolders(t *testing.T) {
	t.Parallel()

	authorID := uuid.Must(uuid.NewV4())
	h := newTestHandlers(&stubRepo{reports: []*model.Report{
		{
			ID:         uuid.Must(uuid.NewV4()),
			Title:      "Nachtschicht",
			AuthorID:   authorID,
			AuthorName: "wache1",
			ShiftDate:  "2025-06-01",
			Status:     model.ReportStatusSubmitted,
			CreatedAt:  time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC),
		},
		{
			ID:         uuid.Must(uuid.NewV4()),
			Title:      "Frühschicht",
			AuthorID:   authorID,
			AuthorName: "wache1",
			ShiftDate:  "2025-07-15",
			Status:     model.ReportStatusSubmitted,
			CreatedAt:  time.Date(2025, 7, 15, 6, 0, 0, 0, time.UTC),
		},
	}})

	c, rec := newTestContext(t, http.MethodGet, "/api/reports/folders", "")
	c.Set(consts.KeyUser, &model.User{ID: authorID, Role: model.RolePolice})
	require.NoError(t, h.GetReportFolders(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Berichte/2025/June"`)
	assert.Contains(t, rec.Body.String(), `"Berichte/2025/July"`)
}
