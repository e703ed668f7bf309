package api

import (
	"BiuBiuStar/internal/api/config"
	"BiuBiuStar/internal/api/middleware"
	"BiuBiuStar/internal/pkg/consts"
	"BiuBiuStar/internal/pkg/logger"
	"BiuBiuStar/internal/repository"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, group *HandlersGroup, userRepo repository.UserRepo) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Server.ClientURL))
	logger.SetupGin(r)

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"status": "ok"}})
	}
	r.GET("/", healthHandler)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", healthHandler)

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.AuthHandler.Register)
			authGroup.POST("/login", group.AuthHandler.Login)

			authed := authGroup.Group("")
			authed.Use(middleware.AuthMiddleware(userRepo))
			{
				authed.POST("/logout", group.AuthHandler.Logout)
				authed.GET("/me", group.AuthHandler.Me)
			}
		}

		userGroup := apiGroup.Group("/users")
		{
			optGroup := userGroup.Group("")
			optGroup.Use(middleware.AuthOptionalMiddleware(userRepo))
			{
				optGroup.GET("/search/users", group.UserHandler.SearchUsers)
				optGroup.GET("/:username", group.UserHandler.GetProfile)
				optGroup.GET("/:username/followers", group.UserFollowsHandler.GetFollowers)
				optGroup.GET("/:username/following", group.UserFollowsHandler.GetFollowing)
				optGroup.GET("/:username/stats", group.UserHandler.GetStats)
				optGroup.GET("/:username/posts", group.PostHandler.ListPostsByUsername)
				optGroup.GET("/:username/events", group.EventHandler.ListCreatedByUsername)
			}

			authed := userGroup.Group("")
			authed.Use(middleware.AuthMiddleware(userRepo))
			{
				authed.PUT("/profile", group.UserHandler.UpdateProfile)
				authed.POST("/:username/follow", group.UserFollowsHandler.Follow)
				authed.DELETE("/:username/follow", group.UserFollowsHandler.Unfollow)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			optGroup := postGroup.Group("")
			optGroup.Use(middleware.AuthOptionalMiddleware(userRepo))
			{
				optGroup.GET("", group.PostHandler.ListPosts)
				optGroup.GET("/:post_id", group.PostHandler.GetPost)
				optGroup.GET("/:post_id/comments", group.PostActionHandler.GetComments)
				optGroup.GET("/user/:username", group.PostHandler.ListPostsByUsername)
			}

			authed := postGroup.Group("")
			authed.Use(middleware.AuthMiddleware(userRepo))
			{
				authed.POST("", group.PostHandler.CreatePost)
				authed.DELETE("/:post_id", group.PostHandler.DeletePost)
				authed.POST("/:post_id/like", group.PostActionHandler.LikePost)
				authed.DELETE("/:post_id/like", group.PostActionHandler.UnlikePost)
				authed.POST("/:post_id/comments", group.PostActionHandler.CreateComment)
			}
		}

		eventGroup := apiGroup.Group("/events")
		{
			optGroup := eventGroup.Group("")
			optGroup.Use(middleware.AuthOptionalMiddleware(userRepo))
			{
				optGroup.GET("", group.EventHandler.ListEvents)
				optGroup.GET("/:event_id", group.EventHandler.GetEvent)
				optGroup.GET("/:event_id/participants", group.EventHandler.ListParticipants)
				optGroup.GET("/user/:username/created", group.EventHandler.ListCreatedByUsername)
				optGroup.GET("/user/:username/joined", group.EventHandler.ListJoinedByUsername)
			}

			authed := eventGroup.Group("")
			authed.Use(middleware.AuthMiddleware(userRepo))
			{
				authed.POST("", group.EventHandler.CreateEvent)
				authed.PUT("/:event_id", group.EventHandler.UpdateEvent)
				authed.DELETE("/:event_id", group.EventHandler.DeleteEvent)
				authed.POST("/:event_id/join", group.EventHandler.JoinEvent)
				authed.DELETE("/:event_id/join", group.EventHandler.LeaveEvent)
			}
		}

		contactGroup := apiGroup.Group("/contact")
		{
			contactGroup.POST("", group.ContactHandler.Submit)
			contactGroup.GET("/stats",
				middleware.AuthMiddleware(userRepo),
				middleware.CheckRoles(consts.RoleAdmin, consts.RoleSuperAdmin),
				group.AdminHandler.ContactStats)
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware(userRepo))
			{
				mediaGroup.POST("/upload", group.MediaHandler.Upload)
				mediaGroup.DELETE("/*key",
					middleware.CheckRoles(consts.RoleAdmin, consts.RoleSuperAdmin),
					group.MediaHandler.Delete)
			}
		}

		// 需要登录 & 拥有 admin 角色
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(middleware.AuthMiddleware(userRepo))
		adminGroup.Use(middleware.CheckRoles(consts.RoleAdmin, consts.RoleSuperAdmin))
		{
			adminGroup.GET("/dashboard/stats", group.AdminHandler.DashboardStats)

			adminGroup.GET("/users", group.AdminHandler.ListUsers)
			adminGroup.PUT("/users/:user_id/role", group.AdminHandler.UpdateUserRole)
			adminGroup.PUT("/users/:user_id/profile", group.AdminHandler.UpdateUserProfile)
			adminGroup.PUT("/users/:user_id/verify", group.AdminHandler.SetUserVerified)
			adminGroup.POST("/users/:user_id/ban", group.AdminHandler.BanUser)
			adminGroup.POST("/users/:user_id/unban", group.AdminHandler.UnbanUser)

			adminGroup.GET("/posts", group.AdminHandler.ListPosts)
			adminGroup.GET("/posts/pending", group.AdminHandler.ListPendingPosts)
			adminGroup.GET("/posts/moderation-stats", group.AdminHandler.ModerationStats)
			adminGroup.POST("/posts/batch-moderate", group.AdminHandler.BatchModerate)
			adminGroup.POST("/posts/:post_id/approve", group.AdminHandler.ApprovePost)
			adminGroup.POST("/posts/:post_id/reject", group.AdminHandler.RejectPost)
			adminGroup.GET("/posts/:post_id/moderation-history", group.AdminHandler.ModerationHistory)
			adminGroup.DELETE("/posts/:post_id", group.AdminHandler.DeletePost)

			adminGroup.GET("/comments", group.AdminHandler.ListComments)
			adminGroup.DELETE("/comments/:comment_id", group.AdminHandler.DeleteComment)

			adminGroup.GET("/events", group.AdminHandler.ListEvents)
			adminGroup.DELETE("/events/:event_id", group.AdminHandler.DeleteEvent)

			adminGroup.GET("/contact/stats", group.AdminHandler.ContactStats)
		}
	}

	return r
}
