package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	campaigndomain "github.com/reachloop/reachloop/internal/campaign/domain"
	"github.com/reachloop/reachloop/pkg/db/pagination"
)

func (s *Server) CreateCampaign(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	orgID, ok := orgIDFromRequest(c)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var intake campaigndomain.CampaignIntake
	if err := c.ShouldBindJSON(&intake); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	campaign, err := s.campaignSvc.Create(c.Request.Context(), campaigndomain.CreateRequest{
		OrgID:  orgID,
		UserID: userID,
		Intake: intake,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": campaign.ID.String()})
}

func (s *Server) ListCampaigns(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	orgID, ok := orgIDFromRequest(c)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.campaignSvc.List(c.Request.Context(), campaigndomain.ListRequest{
		OrgID:      orgID,
		UserID:     userID,
		Pagination: page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetCampaign(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	orgID, ok := orgIDFromRequest(c)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	campaignID, err := parseSnowflakeParam(c, "campaign_id")
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	campaign, err := s.campaignSvc.Get(c.Request.Context(), orgID, userID, campaignID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaign": campaign})
}
