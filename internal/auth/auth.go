package auth

import (
	"net/http"
	"strings"

	"speed_go_backend/internal/errors"
	"speed_go_backend/internal/models"
	"speed_go_backend/internal/services"
	"speed_go_backend/internal/utils/request"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const userKey = "user"

type credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func SetupRoutes(r *gin.Engine, authService *services.AuthService, limiter *RateLimiter) {
	auth := r.Group("/auth")
	auth.Use(limiter.Middleware())
	{
		auth.POST("/signup", signupHandler(authService))
		auth.POST("/login", loginHandler(authService))
		auth.GET("/user", AuthMiddleware(authService), getUser)
	}
}

// AuthMiddleware requires a valid bearer token. WebSocket upgrades carry the
// token in the query string instead.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		if token == "" {
			errors.HandleError(c, errors.New401Error("Authorization header is required"))
			return
		}
		authenticate(c, authService, token)
	}
}

// OptionalAuth attaches the caller when a token is sent and lets anonymous
// requests through.
func OptionalAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		if token == "" {
			c.Next()
			return
		}
		authenticate(c, authService, token)
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			errors.HandleError(c, errors.New401Error(""))
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		errors.HandleError(c, errors.New403Error("This action requires the "+joinRoles(roles)+" role"))
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func authenticate(c *gin.Context, authService *services.AuthService, token string) {
	user, err := authService.Authenticate(c.Request.Context(), token)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	log := zerolog.Ctx(c.Request.Context()).With().Str("user_id", user.ID.String()).Logger()
	c.Request = c.Request.WithContext(log.WithContext(c.Request.Context()))
	c.Set(userKey, user)
	c.Next()
}

func extractToken(c *gin.Context) (string, error) {
	if websocket.IsWebSocketUpgrade(c.Request) {
		return c.Query("token"), nil
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", nil
	}
	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 || !strings.EqualFold(bearerToken[0], "Bearer") {
		return "", errors.New401Error("Invalid authorization header")
	}
	return bearerToken[1], nil
}

func joinRoles(roles []models.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, " or ")
}

func signupHandler(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var creds credentials
		if err := request.BindJSON(c, &creds); err != nil {
			errors.HandleError(c, err)
			return
		}
		user, err := authService.Signup(c.Request.Context(), creds.Email, creds.Password)
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

func loginHandler(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var creds credentials
		if err := request.BindJSON(c, &creds); err != nil {
			errors.HandleError(c, err)
			return
		}
		result, err := authService.Login(c.Request.Context(), creds.Email, creds.Password)
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func getUser(c *gin.Context) {
	user, exists := CurrentUser(c)
	if !exists {
		errors.HandleError(c, errors.New401Error("User not found in context"))
		return
	}
	c.JSON(http.StatusOK, user)
}
