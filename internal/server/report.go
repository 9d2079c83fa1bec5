package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reachloop/reachloop/internal/authorization"
	organizationdomain "github.com/reachloop/reachloop/internal/organization/domain"
	reportdomain "github.com/reachloop/reachloop/internal/report/domain"
)

const dateLayout = "2006-01-02"

// CampaignReport keeps its own response shapes: the report consumer
// contract predates the shared error envelope.
func (s *Server) CampaignReport(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	orgID, err := parseSnowflakeParam(c, "org_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid org id"})
		return
	}
	campaignID, err := parseSnowflakeParam(c, "campaign_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return
	}

	startDate, err := parseDateQuery(c, "startDate")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
		return
	}
	endDate, err := parseDateQuery(c, "endDate")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
		return
	}

	if s.reportLimiter.Enabled() {
		result, err := s.reportLimiter.Allow(c.Request.Context(), orgID.String(), userID.String())
		switch {
		case err != nil:
			// Fail open, but make the broken limiter visible.
			s.log.Warn("report rate limit check failed",
				zap.String("org_id", orgID.String()),
				zap.Error(err),
			)
		case !result.Allowed:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
	}

	report, err := s.reportSvc.Aggregate(c.Request.Context(), reportdomain.ReportRequest{
		OrgID:      orgID,
		CampaignID: campaignID,
		UserID:     userID,
		StartDate:  startDate,
		EndDate:    endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, organizationdomain.ErrNotMember),
			errors.Is(err, authorization.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this organization"})
		case errors.Is(err, reportdomain.ErrInvalidDateRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date range"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

func parseSnowflakeParam(c *gin.Context, name string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param(name)))
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, ErrInvalidRequest
	}
	return id, nil
}

func parseDateQuery(c *gin.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, ErrInvalidRequest
	}
	return time.Parse(dateLayout, raw)
}
