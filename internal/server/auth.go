package server

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"coursecal/internal/calendar"
)

// GoogleLogin redirects the browser to Google's consent screen. Offline
// access is requested so the exchange can also yield a refresh token.
func (s *Server) GoogleLogin(c *gin.Context) {
	authURL := s.oauthConf.AuthCodeURL("state-token",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback exchanges the authorization code for a token and sends the
// browser back to the app with the access token. The token is the only
// credential the pipeline ever sees.
func (s *Server) GoogleCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		c.Redirect(http.StatusTemporaryRedirect, "/?error="+url.QueryEscape(errParam))
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusTemporaryRedirect, "/?error=no_code")
		return
	}

	token, err := calendar.Exchange(c.Request.Context(), s.oauthConf, code)
	if err != nil {
		s.logger.Error("token exchange failed", "error", err)
		c.Redirect(http.StatusTemporaryRedirect, "/?error="+url.QueryEscape(err.Error()))
		return
	}

	redirect := url.Values{}
	redirect.Set("auth_success", "true")
	redirect.Set("access_token", token.AccessToken)
	if token.RefreshToken != "" {
		redirect.Set("refresh_token", token.RefreshToken)
	}
	c.Redirect(http.StatusTemporaryRedirect, "/?"+redirect.Encode())
}
