package api

import (
	"net/http"
	"strings"

	"speed_go_backend/internal/auth"
	"speed_go_backend/internal/errors"
	"speed_go_backend/internal/services"
	"speed_go_backend/internal/utils/request"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func createSubmissionHandler(submissionService SubmissionAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.CreateSubmissionInput
		if err := request.BindJSON(c, &input); err != nil {
			errors.HandleError(c, err)
			return
		}

		var submitterID *uuid.UUID
		if user, ok := auth.CurrentUser(c); ok {
			id := user.ID
			submitterID = &id
		}

		submission, err := submissionService.CreateSubmission(c.Request.Context(), input, submitterID)
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, submission)
	}
}

func parseBibtexHandler(submissionService SubmissionAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Bibtex string `json:"bibtex" binding:"required"`
		}
		if err := request.BindJSON(c, &input); err != nil {
			errors.HandleError(c, err)
			return
		}
		draft, err := submissionService.ParseBibTeX(input.Bibtex)
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, draft)
	}
}

func searchSubmissionsHandler(submissionService SubmissionAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		submissions, err := submissionService.SearchSubmissions(c.Request.Context(), c.Query("query"))
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, submissions)
	}
}

// findByStatusHandler serves both the query-string and the path variant.
func findByStatusHandler(submissionService SubmissionAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Param("status")
		if status == "" {
			status = c.Query("status")
		}
		page, err := submissionService.FindByStatus(c.Request.Context(), status, intQuery(c, "page"), intQuery(c, "limit"))
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func pendingModerationHandler(submissionService SubmissionAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		submissions, err := submissionService.ListPendingModeration(c.Request.Context())
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, submissions)
	}
}

func myPendingHandler(submissionService SubmissionAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		submitterID := strings.TrimSpace(c.Query("submitterId"))
		if submitterID == "" {
			user, ok := auth.CurrentUser(c)
			if !ok {
				errors.HandleError(c, errors.New400Error("submitterId is required"))
				return
			}
			submitterID = user.ID.String()
		}
		submissions, err := submissionService.ListPendingBySubmitter(c.Request.Context(), submitterID)
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, submissions)
	}
}

func getSubmissionHandler(submissionService SubmissionAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		submission, err := submissionService.GetSubmission(c.Request.Context(), c.Param("id"))
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, submission)
	}
}

func detailsForModerationHandler(moderationService ModerationAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		details, err := moderationService.DetailsForModeration(c.Request.Context(), c.Param("id"))
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, details)
	}
}

func moderateHandler(moderationService ModerationAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.ModerationInput
		if err := request.BindJSON(c, &input); err != nil {
			errors.HandleError(c, err)
			return
		}
		user, _ := auth.CurrentUser(c)
		submission, err := moderationService.Moderate(c.Request.Context(), c.Param("id"), input, user.ID.String())
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, submission)
	}
}

func editSubmissionHandler(submissionService SubmissionAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.EditSubmissionInput
		if err := request.BindJSON(c, &input); err != nil {
			errors.HandleError(c, err)
			return
		}
		user, _ := auth.CurrentUser(c)
		submission, err := submissionService.EditSubmission(c.Request.Context(), c.Param("id"), input, user.ID)
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, submission)
	}
}
