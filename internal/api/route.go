package api

import (
	"Creatr/internal/api/dto"
	"Creatr/internal/api/middleware"
	"Creatr/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	if group.MetricsHandler != nil {
		r.GET("/metrics", group.MetricsHandler)
	}

	limited := group.limited()

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, dto.Response{
				Code:    200,
				Message: "pong",
			})
		})

		feedGroup := apiGroup.Group("/feed")
		{
			feedGroup.GET("/trending", group.FeedHandler.GetTrending)

			authOptGroup := feedGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.FeedHandler.GetFeed)
				authOptGroup.GET("/following", group.FeedHandler.GetFollowing)
				authOptGroup.GET("/suggested", group.FeedHandler.GetSuggested)
			}
		}

		userGroup := apiGroup.Group("/user")
		{
			userGroup.GET("/by-username/:username", group.UserHandler.GetByUsername)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/store", group.UserHandler.Store)
				authGroup.GET("/me", group.UserHandler.GetCurrentUser)
				authGroup.PUT("/username", group.UserHandler.UpdateUsername)
				authGroup.GET("/posts/:post_id/stats", group.UserHandler.GetPostStats)
			}
		}

		userFollowGroup := apiGroup.Group("/user-relation")
		{
			userFollowGroup.Use(middleware.AuthMiddleware())
			{
				userFollowGroup.GET("/followers/count", group.UserFollowHandler.GetUserFollowersCount)
				userFollowGroup.GET("/followings/count", group.UserFollowHandler.GetUserFollowingCount)
				userFollowGroup.GET("/isfollow/:following_id", group.UserFollowHandler.IsFollowing)
				userFollowGroup.POST("/follow/:following_id", group.UserFollowHandler.Follow)
				userFollowGroup.DELETE("/follow/:following_id", group.UserFollowHandler.Unfollow)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("/:username/:post_id", group.PostHandler.GetPublishedPost)
			postGroup.POST("/:post_id/view", limited, group.PostHandler.IncrementViewCount)

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
			}
		}

		postActionGroup := apiGroup.Group("/post/action")
		{
			postActionGroup.GET("/comments/:post_id", group.PostActionHandler.GetComments)
			postActionGroup.GET("/likes/:post_id", middleware.AuthOptionalMiddleware(), group.PostActionHandler.HasUserLiked)

			authActionGroup := postActionGroup.Group("")
			authActionGroup.Use(middleware.AuthMiddleware())
			{
				authActionGroup.POST("/likes/:post_id", limited, group.PostActionHandler.ToggleLike)
				authActionGroup.POST("/comments", limited, group.PostActionHandler.CreateComment)
				authActionGroup.DELETE("/comments/:comment_id", group.PostActionHandler.DeleteComment)
			}
		}
	}

	return r
}
