package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/storefront/internal/common"
	"github.com/avolkov/storefront/internal/server/metrics"
)

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Same response shape as a wrong password: no hints about which
		// part of the input was off.
		metrics.SignInAttempts.WithLabelValues("failure").Inc()
		respondError(c, http.StatusUnauthorized, "Unauthorized", "Invalid credentials")
		return
	}

	ip := c.ClientIP()
	if retryAfter := s.throttle.RetryAfter(ip); retryAfter > 0 {
		metrics.SignInAttempts.WithLabelValues("throttled").Inc()
		c.Header("Retry-After", strconv.FormatInt(int64(retryAfter.Seconds())+1, 10))
		respondError(c, http.StatusTooManyRequests, "Too many attempts", "Try again later")
		return
	}

	token, err := s.users.SignIn(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		s.throttle.Reset(ip)
		metrics.SignInAttempts.WithLabelValues("success").Inc()
		s.setSessionCookie(c, token)
		respondOK(c, http.StatusOK, nil, "Signed in")
	case errors.Is(err, common.ErrInvalidCredentials):
		s.throttle.RecordFailure(ip)
		metrics.SignInAttempts.WithLabelValues("failure").Inc()
		respondError(c, http.StatusUnauthorized, "Unauthorized", "Invalid credentials")
	case errors.Is(err, common.ErrStoreUnavailable):
		metrics.SignInAttempts.WithLabelValues("store_error").Inc()
		s.logger.Error(c.Request.Context(), "credential store unavailable", "error", err)
		respondError(c, http.StatusServiceUnavailable, "Unavailable", "Try again shortly")
	default:
		s.logger.Error(c.Request.Context(), "sign-in failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal error", "Try again shortly")
	}
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Bad request", "Unable to register with the provided details")
		return
	}

	user, token, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case err == nil:
		s.setSessionCookie(c, token)
		respondOK(c, http.StatusCreated, gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		}, "Registered")
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrEmailTaken):
		// A taken email reads the same as bad input so registration cannot
		// be used to enumerate accounts.
		respondError(c, http.StatusBadRequest, "Bad request", "Unable to register with the provided details")
	case errors.Is(err, common.ErrStoreUnavailable):
		s.logger.Error(c.Request.Context(), "credential store unavailable", "error", err)
		respondError(c, http.StatusServiceUnavailable, "Unavailable", "Try again shortly")
	default:
		s.logger.Error(c.Request.Context(), "registration failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal error", "Try again shortly")
	}
}

func (s *Server) signOut(c *gin.Context) {
	// Stateless tokens: signing out means discarding the cookie. The token
	// itself stays valid until expiry.
	s.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

func (s *Server) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(s.sessionTTL.Seconds()), "/", "", false, true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}
