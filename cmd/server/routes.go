package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/harborlight/carecal/internal/db"
	"github.com/harborlight/carecal/internal/http/api"
	authapi "github.com/harborlight/carecal/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/harborlight/carecal/internal/http/api/admin/control/endpoints"
	"github.com/harborlight/carecal/internal/mqtt"
	"github.com/harborlight/carecal/internal/schedule"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, engine *schedule.Engine, boards *mqtt.Notifier) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Disposition",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		authapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		// scheduling modules
		adminapi.ShiftModule(store, engine, boards),
		adminapi.EmployeeModule(store, boards),
		adminapi.AttendanceModule(store),
		adminapi.TaskModule(store),
		adminapi.TimeOffModule(store),
		adminapi.ReportModule(store),
		// session endpoints that require auth
		authapi.AuthSessionModule(env.SecretKey, store),
	)

	// the coordinator dashboard and the kiosk board page
	r.Static("/static", "./static")
	r.GET("/", func(c *gin.Context) {
		c.File("./static/index.html")
	})
}
