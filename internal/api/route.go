package api

import (
	"net/http"

	"fluxo/internal/api/middleware"
	"fluxo/internal/pkg/consts"
	"fluxo/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.UserHandler.Register)
			authGroup.POST("/login", group.UserHandler.Login)

			loggedGroup := authGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("/logout", group.UserHandler.Logout)
				loggedGroup.GET("/me", group.UserHandler.GetMe)
			}
		}

		feedGroup := apiGroup.Group("/feed")
		{
			homeGroup := feedGroup.Group("")
			homeGroup.Use(middleware.AuthMiddleware())
			{
				homeGroup.GET("/home", group.PostHandler.GetHomeFeed)
			}

			exploreGroup := feedGroup.Group("")
			exploreGroup.Use(middleware.AuthOptionalMiddleware())
			{
				exploreGroup.GET("/explore", group.PostHandler.GetExploreFeed)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/detail/:post_id", group.PostHandler.GetPostDetail)
				authOptGroup.GET("/list/:user_id", group.PostHandler.GetUserFeed)
				authOptGroup.GET("/comments/:post_id", group.PostActionHandler.GetComments)
			}

			loggedGroup := postGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("", group.PostHandler.CreatePost)
				loggedGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				loggedGroup.POST("/image", group.PostHandler.UploadPostImage)

				loggedGroup.POST("/likes/:post_id", group.PostActionHandler.LikePost)
				loggedGroup.POST("/comments", group.PostActionHandler.CreateComment)
				loggedGroup.POST("/reports/:post_id", group.PostActionHandler.ReportPost)
			}
		}

		profileGroup := apiGroup.Group("/profiles")
		{
			viewGroup := profileGroup.Group("")
			viewGroup.Use(middleware.AuthOptionalMiddleware())
			{
				viewGroup.GET("/:username", group.ProfileHandler.GetProfile)
			}

			loggedGroup := profileGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.PUT("", group.ProfileHandler.UpdateProfile)
				loggedGroup.POST("/avatar", group.ProfileHandler.UploadAvatar)
			}
		}

		followGroup := apiGroup.Group("/user-relation")
		{
			listGroup := followGroup.Group("")
			listGroup.Use(middleware.AuthOptionalMiddleware())
			{
				listGroup.GET("/followers/:user_id", group.UserFollowHandler.GetFollowers)
				listGroup.GET("/followings/:user_id", group.UserFollowHandler.GetFollowing)
			}

			loggedGroup := followGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("/follow/:user_id", group.UserFollowHandler.FollowUser)
			}
		}

		notificationGroup := apiGroup.Group("/notifications")
		notificationGroup.Use(middleware.AuthMiddleware())
		{
			notificationGroup.GET("/list", group.NotificationHandler.ListNotifications)
			notificationGroup.GET("/unread", group.NotificationHandler.GetUnreadCount)
			notificationGroup.POST("/read/all", group.NotificationHandler.MarkAllRead)
		}

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(middleware.AuthMiddleware())
		{
			reportGroup := adminGroup.Group("/reports")
			reportGroup.Use(middleware.CheckRoles(consts.RoleAdmin, consts.RoleModerator))
			{
				reportGroup.GET("", group.AdminHandler.ListReports)
				reportGroup.PUT("/:report_id", group.AdminHandler.CloseReport)
			}

			userGroup := adminGroup.Group("/users")
			userGroup.Use(middleware.CheckRoles(consts.RoleAdmin))
			{
				userGroup.GET("", group.AdminHandler.ListUsers)
			}
		}
	}

	return r
}
