package wire

import (
	"BiuBiuStar/internal/api"
	"BiuBiuStar/internal/api/config"
	"BiuBiuStar/internal/api/handler"
	"BiuBiuStar/internal/job"
	"BiuBiuStar/internal/pkg/cron"
	"BiuBiuStar/internal/repository"
	"BiuBiuStar/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router      *gin.Engine
	DB          *gorm.DB
	CronManager *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	followRepo := repository.NewUserFollowRepo(db)
	postRepo := repository.NewPostRepo(db)
	actionRepo := repository.NewPostActionRepo(db)
	eventRepo := repository.NewEventRepo(db)
	moderationRepo := repository.NewModerationRepo(db)
	contactRepo := repository.NewContactRepo(db)

	userService := service.NewUserService(userRepo, followRepo, eventRepo, actionRepo)
	followService := service.NewUserFollowService(followRepo, userRepo)
	postService := service.NewPostService(postRepo, actionRepo, userRepo, followRepo)
	actionService := service.NewPostActionService(actionRepo, postRepo, userRepo)
	eventService := service.NewEventService(eventRepo, userRepo)
	adminService := service.NewAdminService(userRepo, postRepo, actionRepo, eventRepo, moderationRepo)
	contactService := service.NewContactService(contactRepo, cfg.Contact)

	handlers := &api.HandlersGroup{
		AuthHandler:        handler.NewAuthHandler(userService),
		UserHandler:        handler.NewUserHandler(userService),
		UserFollowsHandler: handler.NewUserFollowsHandler(followService),
		PostHandler:        handler.NewPostHandler(postService),
		PostActionHandler:  handler.NewPostActionHandler(actionService),
		EventHandler:       handler.NewEventHandler(eventService),
		AdminHandler:       handler.NewAdminHandler(adminService, contactService),
		ContactHandler:     handler.NewContactHandler(contactService),
		MediaHandler:       handler.NewMediaHandler(cfg.MinIO.MaxSize),
	}

	router := api.SetupRouter(cfg, handlers, userRepo)

	cronMgr := cron.NewCronManager(job.NewEventStatusJob(eventRepo))

	return &ApplicationContainer{
		Router:      router,
		DB:          db,
		CronManager: cronMgr,
	}, nil
}
