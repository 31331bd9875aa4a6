package api

import (
	"context"

	"speed_go_backend/internal/auth"
	"speed_go_backend/internal/models"
	"speed_go_backend/internal/services"
	"speed_go_backend/internal/utils/bibtexparser"
	"speed_go_backend/internal/utils/query"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubmissionAPI interface {
	CreateSubmission(ctx context.Context, input services.CreateSubmissionInput, submitterID *uuid.UUID) (*models.Submission, error)
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
	SearchSubmissions(ctx context.Context, q string) ([]models.Submission, error)
	FindByStatus(ctx context.Context, status string, page, limit int) (*services.SubmissionPage, error)
	ListPendingModeration(ctx context.Context) ([]models.Submission, error)
	ListPendingBySubmitter(ctx context.Context, submitterID string) ([]models.Submission, error)
	EditSubmission(ctx context.Context, id string, input services.EditSubmissionInput, editorID uuid.UUID) (*models.Submission, error)
	ParseBibTeX(content string) (*bibtexparser.Draft, error)
}

type ModerationAPI interface {
	DetailsForModeration(ctx context.Context, id string) (*services.ModerationDetails, error)
	Moderate(ctx context.Context, id string, input services.ModerationInput, moderatorID string) (*models.Submission, error)
}

type EvidenceAPI interface {
	CreateEvidence(ctx context.Context, input services.CreateEvidenceInput, analystID string) (*models.EvidenceEntry, error)
	GetEvidenceBySubmission(ctx context.Context, submissionID string) ([]models.EvidenceEntry, error)
	SearchEvidence(ctx context.Context, filter query.EvidenceFilter, page, limit int) (*services.EvidencePage, error)
}

func SetupRoutes(r *gin.Engine, submissionService SubmissionAPI, moderationService ModerationAPI, evidenceService EvidenceAPI, authService *services.AuthService) {
	requireUser := auth.AuthMiddleware(authService)
	optionalUser := auth.OptionalAuth(authService)
	moderatorOnly := auth.RequireRole(models.RoleModerator)
	analystOnly := auth.RequireRole(models.RoleAnalyst)

	api := r.Group("/api")
	{
		submissions := api.Group("/submissions")
		submissions.POST("", optionalUser, createSubmissionHandler(submissionService))
		submissions.POST("/parse-bibtex", parseBibtexHandler(submissionService))
		submissions.GET("/search", searchSubmissionsHandler(submissionService))
		submissions.GET("/find-by-status", findByStatusHandler(submissionService))
		submissions.GET("/by-status/:status", findByStatusHandler(submissionService))
		submissions.GET("/pending-moderation", requireUser, moderatorOnly, pendingModerationHandler(submissionService))
		submissions.GET("/my-pending", optionalUser, myPendingHandler(submissionService))
		submissions.GET("/:id", getSubmissionHandler(submissionService))
		submissions.GET("/:id/details-for-moderation", requireUser, moderatorOnly, detailsForModerationHandler(moderationService))
		submissions.PATCH("/:id/moderate", requireUser, moderatorOnly, moderateHandler(moderationService))
		submissions.PATCH("/:id", requireUser, editSubmissionHandler(submissionService))

		evidence := api.Group("/evidence-entries")
		evidence.POST("", requireUser, analystOnly, createEvidenceHandler(evidenceService))
		evidence.GET("/by-submission/:submissionId", evidenceBySubmissionHandler(evidenceService))
		evidence.GET("/search", searchEvidenceHandler(evidenceService))
	}
}
