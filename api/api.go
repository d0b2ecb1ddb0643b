/*
Copyright 2025 Careview Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/careviewhq/careview"
	"github.com/careviewhq/careview/api/middleware"
	"github.com/careviewhq/careview/config"
)

type Api struct {
	careview *careview.Careview
	router   *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.POST("/dashboards/doctor", a.DoctorDashboard)
	router.POST("/dashboards/patient", a.PatientDashboard)
	router.GET("/dashboards/admin", a.AdminDashboard)
	return router
}

func NewAPI(cv *careview.Careview) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}
	r := gin.Default()
	if conf.Server.Secure {
		r.Use(middleware.SecretKeyAuthMiddleware())
	}
	r.Use(middleware.RateLimitMiddleware(conf))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, "server running...")
	})

	return &Api{careview: cv, router: r}
}
