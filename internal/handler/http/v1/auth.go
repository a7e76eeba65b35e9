package v1

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/resqalert/internal/config"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/sirupsen/logrus"
)

// APIKeyAuthMiddleware - middleware для аутентификации мобильного приложения по API-ключу
func APIKeyAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			log.Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		isValid := false
		for _, key := range cfg.APIKeys {
			if key != "" && subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
				isValid = true
				break
			}
		}

		if !isValid {
			log.WithField("client_ip", c.ClientIP()).Warn("Invalid API key provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Next()
	}
}

// SessionMiddleware восстанавливает сессию оператора по токену.
// Токен берется из заголовка Authorization: Bearer, а для websocket,
// где заголовок не выставить, из параметра access_token.
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if token == "" {
			token = c.Query("access_token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		session, err := h.services.Auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			h.respondError(c, h.logger.WithField("middleware", "session"), err)
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequirePermission пропускает запрос, только если роль сессии имеет право act на obj
func (h *Handler) RequirePermission(obj, act string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := currentSession(c)
		if !h.authorizer.Allowed(session.Role, obj, act) {
			h.logger.WithFields(logrus.Fields{
				"role":   session.Role,
				"object": obj,
				"action": act,
			}).Warn("Permission denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// @Summary Log in
// @Description Log in as an agency or super admin operator and receive a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Operator credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]string "Invalid request body or unknown role"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	role, err := models.ParseRole(input.Role)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	token, session, err := h.services.Auth.Login(c.Request.Context(), role, input.Username, input.Password)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		Role:      string(session.Role),
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt,
	})
}

// @Summary Log out
// @Description Revoke the current bearer token
// @Tags Auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	log := h.logger.WithField("method", "logout")
	if err := h.services.Auth.Logout(c.Request.Context(), currentSession(c)); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Update account
// @Description Change the username and/or password of the current operator
// @Tags Auth
// @Accept json
// @Security BearerAuth
// @Param account body UpdateAccountRequest true "New credentials"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Username already taken"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/account [patch]
func (h *Handler) updateAccount(c *gin.Context) {
	var input UpdateAccountRequest
	log := h.logger.WithField("method", "updateAccount")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	if err := h.services.Auth.UpdateAccount(c.Request.Context(), currentSession(c), input.Username, input.Password); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
