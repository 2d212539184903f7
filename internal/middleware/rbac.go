package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/rbac"
	"github.com/m1z23r/drift/pkg/drift"
)

// RequireProjectRole guards a route behind a minimum project role. The
// acting user and project are resolved from the request before the guard
// runs; with no roles listed the middleware just passes through.
func RequireProjectRole(guard *rbac.Guard, roles ...rbac.Role) drift.HandlerFunc {
	return func(c *drift.Context) {
		actorID := extractActorID(c)
		projectID := extractProjectID(c)

		if err := guard.Authorize(c.Request.Context(), actorID, projectID, roles...); err != nil {
			respondGuardError(c, err)
			return
		}

		c.Next()
	}
}

func respondGuardError(c *drift.Context, err error) {
	var insufficient *rbac.InsufficientRoleError
	switch {
	case errors.Is(err, rbac.ErrMissingActor):
		c.Forbidden(err.Error())
	case errors.Is(err, rbac.ErrMissingProject):
		c.BadRequest(err.Error())
	case errors.Is(err, rbac.ErrNotAMember):
		c.Forbidden(err.Error())
	case errors.As(err, &insufficient):
		c.Forbidden(err.Error())
	default:
		c.InternalServerError("failed to check permissions")
	}
}

// extractActorID resolves the acting user: the authenticated user when
// present, otherwise header, then body, then query. The first value found
// wins; sources are never merged.
func extractActorID(c *drift.Context) string {
	if userID := GetUserID(c); userID != uuid.Nil {
		return userID.String()
	}
	if v := c.GetHeader("X-User-Id"); v != "" {
		return v
	}
	if v := bodyField(c, "userId"); v != "" {
		return v
	}
	return c.QueryParam("userId")
}

// extractProjectID resolves the project scope: header, then body, then
// query, then the route parameter.
func extractProjectID(c *drift.Context) string {
	if v := c.GetHeader("X-Project-Id"); v != "" {
		return v
	}
	if v := bodyField(c, "projectId"); v != "" {
		return v
	}
	if v := c.QueryParam("projectId"); v != "" {
		return v
	}
	return c.Param("projectId")
}

// bodyField reads a top-level string field from a JSON body, restoring
// the body so the handler can still bind it.
func bodyField(c *drift.Context, key string) string {
	if c.Request.Body == nil {
		return ""
	}

	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}

	var value string
	if raw, ok := fields[key]; ok {
		_ = json.Unmarshal(raw, &value)
	}
	return value
}
