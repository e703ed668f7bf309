package api_test

import (
	"BiuBiuStar/internal/api/config"
	"BiuBiuStar/internal/model"
	"BiuBiuStar/internal/pkg/consts"
	"BiuBiuStar/internal/pkg/security"
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"BiuBiuStar/internal/wire"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := security.Setup("test-secret", "biubiustar-test", 1); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func setupTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.UserFollow{},
		&model.Post{},
		&model.PostComment{},
		&model.Like{},
		&model.Event{},
		&model.EventParticipant{},
		&model.PostModerationHistory{},
		&model.ContactForm{},
	))

	app, err := wire.BuildApplication(db, &config.Config{})
	require.NoError(t, err)
	return app.Router, db
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := &envelope{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), resp))
	}
	return w, resp
}

func registerAndLogin(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	w, _ := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	require.NotEmpty(t, login.Token)
	return login.Token
}

func TestHealth(t *testing.T) {
	router, _ := setupTestApp(t)

	w, resp := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}

func TestAuthFlow(t *testing.T) {
	router, _ := setupTestApp(t)

	token := registerAndLogin(t, router, "alice")

	w, resp := doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &me))
	assert.Equal(t, "alice", me.Username)

	// 未带 token 访问受保护接口
	w, _ = doJSON(t, router, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoleGate(t *testing.T) {
	router, db := setupTestApp(t)

	token := registerAndLogin(t, router, "bob")

	// 普通用户被拒
	w, _ := doJSON(t, router, http.MethodGet, "/api/admin/dashboard/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 提升为管理员后放行（角色每次请求从库里读）
	require.NoError(t, db.Model(&model.User{}).
		Where("username = ?", "bob").
		Update("role", consts.RoleAdmin).Error)

	w, _ = doJSON(t, router, http.MethodGet, "/api/admin/dashboard/stats", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 联系表单统计同样只对管理员开放
	w, _ = doJSON(t, router, http.MethodGet, "/api/contact/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/contact/stats", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBannedUserRejected(t *testing.T) {
	router, db := setupTestApp(t)

	token := registerAndLogin(t, router, "carol")

	require.NoError(t, db.Model(&model.User{}).
		Where("username = ?", "carol").
		Update("is_ban", true).Error)

	w, _ := doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// TestCommunityFlow 走一遍发帖、互动、活动报名与后台审核的主链路。
func TestCommunityFlow(t *testing.T) {
	router, db := setupTestApp(t)

	aliceToken := registerAndLogin(t, router, "alice")
	bobToken := registerAndLogin(t, router, "bob")

	// alice 发帖
	w, resp := doJSON(t, router, http.MethodPost, "/api/posts", aliceToken, gin.H{
		"title":   "第一帖",
		"content": "大家好",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var post struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &post))

	// bob 关注 alice、点赞并评论
	w, _ = doJSON(t, router, http.MethodPost, "/api/users/alice/follow", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", post.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 重复点赞 400
	w, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", post.ID), bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID), bobToken, gin.H{
		"content": "顶一下",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// bob 的关注流能看到 alice 的帖子
	w, resp = doJSON(t, router, http.MethodGet, "/api/posts?type=following", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.EqualValues(t, 1, page.Total)

	// alice 创建活动，bob 报名
	w, resp = doJSON(t, router, http.MethodPost, "/api/events", aliceToken, gin.H{
		"title":       "周末聚会",
		"description": "线下见面",
		"start_date":  "2099-01-01T10:00:00Z",
		"end_date":    "2099-01-01T12:00:00Z",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var event struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &event))

	w, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/events/%d/join", event.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 游客也能看活动详情
	w, resp = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/events/%d", event.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		ParticipantCount int64 `json:"participant_count"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &detail))
	assert.EqualValues(t, 1, detail.ParticipantCount)

	// 后台审核链路：bob 升管理员，审核一条待审帖
	require.NoError(t, db.Model(&model.User{}).
		Where("username = ?", "bob").
		Update("role", consts.RoleAdmin).Error)

	w, resp = doJSON(t, router, http.MethodPost, "/api/posts", aliceToken, gin.H{
		"content": "待审内容",
		"status":  "draft",
	})
	require.Equal(t, http.StatusOK, w.Code)

	pendingPost := &model.Post{UserID: 1, Content: "等待审核", Status: model.PostStatusPending}
	require.NoError(t, db.Create(pendingPost).Error)

	w, _ = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/admin/posts/%d/approve", pendingPost.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 重复审核报 404
	w, _ = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/admin/posts/%d/approve", pendingPost.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
