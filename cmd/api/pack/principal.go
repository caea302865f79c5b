package pack

import (
	"github.com/cloudwego/hertz/pkg/app"

	"mytube.com/pkg/paginate"
)

const principalKey = "principal_id"

// SetPrincipal is called by the auth middleware once the access token checks out.
func SetPrincipal(c *app.RequestContext, userID string) {
	c.Set(principalKey, userID)
}

// Principal returns the authenticated user id, or "" for an anonymous viewer.
func Principal(c *app.RequestContext) string {
	return c.GetString(principalKey)
}

func PageParams(c *app.RequestContext) paginate.Params {
	return paginate.ParseParams(c.Query("page"), c.Query("limit"))
}
