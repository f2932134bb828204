package server

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/models"
	"github.com/techagentng/hazardx/server/response"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo?access_token="

func (s *Server) googleOauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.Config.GoogleClientID,
		ClientSecret: s.Config.GoogleClientSecret,
		RedirectURL:  s.Config.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// HandleGoogleLogin redirects to Google's consent page with a random state
// nonce stored in a short-lived cookie.
func (s *Server) HandleGoogleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := generateStateToken()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		c.SetCookie("oauthstate", state, 600, "/", "", false, true)

		url := s.googleOauthConfig().AuthCodeURL(state)
		c.Redirect(http.StatusTemporaryRedirect, url)
	}
}

func (s *Server) HandleGoogleCallback() gin.HandlerFunc {
	return func(c *gin.Context) {
		stateCookie, err := c.Cookie("oauthstate")
		if err != nil || c.Query("state") != stateCookie {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("invalid oauth state", http.StatusUnauthorized))
			return
		}

		code := c.Query("code")
		if code == "" {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("missing authorization code", http.StatusBadRequest))
			return
		}

		token, err := s.googleOauthConfig().Exchange(c.Request.Context(), code)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("code exchange failed", http.StatusUnauthorized))
			return
		}

		authResponse, err := fetchGoogleUserInfo(token.AccessToken)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		userResponse, apiErr := s.AuthService.GoogleLoginUser(authResponse)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

func fetchGoogleUserInfo(accessToken string) (*models.GoogleAuthResponse, error) {
	resp, err := http.Get(googleUserInfoURL + accessToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var authResponse models.GoogleAuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResponse); err != nil {
		return nil, err
	}
	return &authResponse, nil
}

func generateStateToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
