package middleware

import (
	"net/http"

	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// analyticsEvents maps "METHOD route" to the product event it represents.
// Routes not listed here are not tracked.
var analyticsEvents = map[string]string{
	"POST /api/schema/add":               "schema_field_added",
	"PUT /api/schema/update":             "schema_updated",
	"POST /api/transactions":             "transaction_created",
	"PUT /api/transactions/:id":          "transaction_updated",
	"DELETE /api/transactions/:id":       "transaction_deleted",
	"POST /api/transactions/:id/archive": "transaction_archived",
	"POST /api/transactions/:id/restore": "transaction_restored",
	"GET /api/transactions/statement":    "statement_downloaded",
}

// PosthogMiddleware records a product event for each successful, authenticated call to a tracked route.
// Only the route, the status and the attachment count are sent. Request bodies never leave the server.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !posthogClient.IsInitialized() || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		event, tracked := analyticsEvents[c.Request.Method+" "+c.FullPath()]
		if !tracked {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		props := map[string]any{"status_code": c.Writer.Status()}
		if files := GetUploadedFiles(c); len(files) > 0 {
			props["attachments"] = len(files)
		}
		posthogClient.Enqueue(userID, event, props)
	}
}
