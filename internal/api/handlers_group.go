package api

import "BiuBiuStar/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	AuthHandler        *handler.AuthHandler
	UserHandler        *handler.UserHandler
	UserFollowsHandler *handler.UserFollowsHandler
	PostHandler        *handler.PostHandler
	PostActionHandler  *handler.PostActionHandler
	EventHandler       *handler.EventHandler
	AdminHandler       *handler.AdminHandler
	ContactHandler     *handler.ContactHandler
	MediaHandler       *handler.MediaHandler
}
