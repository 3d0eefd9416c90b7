package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// AdminAudit captures the identity, URL, and request/response bodies of
// admin-authenticated requests, logs them, and persists an audit record.
// Audit failures are logged as warnings and never fail the request itself.
func AdminAudit(auditRepo repository.AuditLogRepository) echo.MiddlewareFunc {
	return echomw.BodyDumpWithConfig(echomw.BodyDumpConfig{
		Handler: func(c echo.Context, reqBody, resBody []byte) {
			user, ok := AuthUserFromContext(c)
			if !ok {
				return
			}

			req := c.Request()
			log.Printf("admin request - user=%d email=%s role=%s time=%s url=%s",
				user.ID, user.Email, user.Role, time.Now().Format(time.RFC3339), req.RequestURI)
			log.Printf("admin request body = %s", string(reqBody))
			log.Printf("admin response body = %s", string(resBody))

			entry := &model.AuditLog{
				UserID:       user.ID,
				Email:        user.Email,
				Role:         user.Role,
				Method:       req.Method,
				Path:         req.URL.Path,
				Status:       c.Response().Status,
				RequestBody:  string(reqBody),
				ResponseBody: string(resBody),
			}
			if err := auditRepo.Create(req.Context(), entry); err != nil {
				log.Printf("warning: failed to persist audit log: %v", err)
			}
		},
	})
}
