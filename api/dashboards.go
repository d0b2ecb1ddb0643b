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
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/careviewhq/careview"
	model2 "github.com/careviewhq/careview/api/model"
	"github.com/careviewhq/careview/internal/apierror"
	"github.com/careviewhq/careview/model"
)

// DoctorDashboard assembles the doctor's dashboard for the subject in
// the request body. An optional ?q= query filters rows by approximate
// display name.
func (a Api) DoctorDashboard(c *gin.Context) {
	var req model2.DashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if err := req.ValidateDashboardRequest(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := a.careview.AssembleDoctorDashboard(c.Request.Context(), req.ToSubjectContext(model.RoleDoctor))
	if err != nil {
		apiErr := apierror.NewAPIError(apierror.ErrUpstream, "failed to load dashboard", err.Error())
		c.JSON(apierror.MapErrorToHTTPStatus(apiErr), gin.H{"error": apiErr.Message})
		return
	}

	view.Rows = careview.FilterRowsByName(view.Rows, c.Query("q"), careview.DefaultNameDrift)
	c.JSON(http.StatusOK, view)
}

// PatientDashboard assembles the patient's dashboard for the subject in
// the request body.
func (a Api) PatientDashboard(c *gin.Context) {
	var req model2.DashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if err := req.ValidateDashboardRequest(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := a.careview.AssemblePatientDashboard(c.Request.Context(), req.ToSubjectContext(model.RolePatient))
	if err != nil {
		apiErr := apierror.NewAPIError(apierror.ErrUpstream, "failed to load dashboard", err.Error())
		c.JSON(apierror.MapErrorToHTTPStatus(apiErr), gin.H{"error": apiErr.Message})
		return
	}

	view.Rows = careview.FilterRowsByName(view.Rows, c.Query("q"), careview.DefaultNameDrift)
	c.JSON(http.StatusOK, view)
}

// AdminDashboard assembles the unscoped billing/admin dashboard.
func (a Api) AdminDashboard(c *gin.Context) {
	view, err := a.careview.AssembleAdminDashboard(c.Request.Context())
	if err != nil {
		apiErr := apierror.NewAPIError(apierror.ErrUpstream, "failed to load dashboard", err.Error())
		c.JSON(apierror.MapErrorToHTTPStatus(apiErr), gin.H{"error": apiErr.Message})
		return
	}

	view.Rows = careview.FilterRowsByName(view.Rows, c.Query("q"), careview.DefaultNameDrift)
	c.JSON(http.StatusOK, view)
}
