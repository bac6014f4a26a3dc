// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/room-assignment/internal/config"
	"github.com/iliyamo/room-assignment/internal/handler"
	"github.com/iliyamo/room-assignment/internal/middleware"
)

// RegisterRoutes wires the health check and the /v1 API onto the Echo
// instance. The rate limiter applies to the whole group; the response
// cache only wraps the read endpoints. rdb may be nil, in which case
// both middlewares pass requests straight through.
func RegisterRoutes(e *echo.Echo, api *handler.API, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")
	v1.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	v1.GET("/board", api.GetBoard, cache)
	v1.GET("/users", api.ListUsers, cache)
	v1.GET("/rooms", api.ListRooms, cache)
	v1.GET("/assignments", api.ListAssignments, cache)

	v1.POST("/users", api.CreateUser)
	v1.PATCH("/users/:id", api.UpdateUser)
	v1.DELETE("/users/:id", api.DeleteUser)

	v1.POST("/rooms", api.CreateRoom)
	v1.PATCH("/rooms/:id", api.UpdateRoom)
	v1.DELETE("/rooms/:id", api.DeleteRoom)

	v1.POST("/assign", api.ReconcileAssignment)
}
