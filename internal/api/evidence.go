package api

import (
	"net/http"

	"speed_go_backend/internal/auth"
	"speed_go_backend/internal/errors"
	"speed_go_backend/internal/services"
	"speed_go_backend/internal/utils/query"
	"speed_go_backend/internal/utils/request"

	"github.com/gin-gonic/gin"
)

func createEvidenceHandler(evidenceService EvidenceAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.CreateEvidenceInput
		if err := request.BindJSON(c, &input); err != nil {
			errors.HandleError(c, err)
			return
		}
		user, _ := auth.CurrentUser(c)
		entry, err := evidenceService.CreateEvidence(c.Request.Context(), input, user.ID.String())
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

func evidenceBySubmissionHandler(evidenceService EvidenceAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := evidenceService.GetEvidenceBySubmission(c.Request.Context(), c.Param("submissionId"))
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

func searchEvidenceHandler(evidenceService EvidenceAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := query.EvidenceFilter{
			SEPractice: c.Query("sePractice"),
			Keywords:   c.Query("keywords"),
		}
		page, err := evidenceService.SearchEvidence(c.Request.Context(), filter, intQuery(c, "page"), intQuery(c, "limit"))
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}
