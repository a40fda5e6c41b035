package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"bakehouse-backend/internal/config"
	"bakehouse-backend/internal/service"
	"bakehouse-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	stateCookie    = "oauth_state"
	stateCookieTTL = 300
)

// OAuthHandler runs the Google sign-in round trip: redirect to consent,
// exchange the code, then hand the browser back to the frontend with the same
// JWT the password login issues.
type OAuthHandler struct {
	auth        *service.AuthService
	oauth       *oauth2.Config
	frontendURL string
	logger      *logger.Logger
}

func NewOAuthHandler(cfg *config.Config, auth *service.AuthService, log *logger.Logger) *OAuthHandler {
	return &OAuthHandler{
		auth: auth,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  googleAuthURL,
				TokenURL: googleTokenURL,
			},
		},
		frontendURL: cfg.FrontendURL,
		logger:      log.WithComponent("oauth_handler"),
	}
}

func (h *OAuthHandler) Redirect(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(stateCookie, state, stateCookieTTL, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state))
}

func (h *OAuthHandler) Callback(c *gin.Context) {
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		h.fail(c, "state mismatch", err)
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	token, err := h.oauth.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.fail(c, "code exchange failed", err)
		return
	}

	profile, err := h.fetchProfile(c, token)
	if err != nil {
		h.fail(c, "fetching google profile", err)
		return
	}

	user, jwt, err := h.auth.LoginWithGoogle(c.Request.Context(), profile.Email, profile.Name)
	if err != nil {
		h.fail(c, "google login", err)
		return
	}

	encoded, err := json.Marshal(user)
	if err != nil {
		h.fail(c, "encoding user", err)
		return
	}
	query := url.Values{}
	query.Set("token", jwt)
	query.Set("user", string(encoded))
	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/oauth/callback?"+query.Encode())
}

type googleProfile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *OAuthHandler) fetchProfile(c *gin.Context, token *oauth2.Token) (*googleProfile, error) {
	res, err := h.oauth.Client(c.Request.Context(), token).Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var profile googleProfile
	if err := json.NewDecoder(res.Body).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// fail sends the browser back to the frontend login page instead of showing a
// JSON error mid-redirect.
func (h *OAuthHandler) fail(c *gin.Context, msg string, err error) {
	h.logger.WithError(err).Warn(msg)
	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/login?error=oauth_failed")
}
