package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RunMeteringPass triggers one pass synchronously. The schedule invokes
// the same worker; this endpoint exists for operators and tests.
func (s *Server) RunMeteringPass(c *gin.Context) {
	summary, err := s.worker.RunOnce(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"run_id":        summary.RunID,
		"tenants":       summary.Tenants,
		"tenant_errors": summary.TenantErrors,
		"records":       summary.Records,
	})
}
