package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"enigmaCrackerBackend/internal/core/domain"
)

// Response is the envelope of every API reply.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

func respondError(c *gin.Context, err error) {
	status, code := classify(err)
	c.JSON(status, Response{Success: false, Error: err.Error(), Code: code})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: msg, Code: "BAD_REQUEST"})
}

var errorStatus = []struct {
	target error
	status int
}{
	{domain.ErrJobNotFound, http.StatusNotFound},
	{domain.ErrInvalidSymbol, http.StatusBadRequest},
	{domain.ErrInvalidSettings, http.StatusBadRequest},
	{domain.ErrEmptyKeyspace, http.StatusBadRequest},
	{domain.ErrStructuralConfig, http.StatusBadRequest},
	{domain.ErrNoMachineLoaded, http.StatusConflict},
	{domain.ErrEmptyDictionary, http.StatusConflict},
}

func classify(err error) (int, string) {
	for _, e := range errorStatus {
		if errors.Is(err, e.target) {
			return e.status, e.target.Error()
		}
	}
	var parseErr *domain.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusBadRequest, "INVALID_VALUE"
	}
	return http.StatusInternalServerError, "INTERNAL"
}
