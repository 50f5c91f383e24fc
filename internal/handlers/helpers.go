package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"construtora/internal/logging"
	"construtora/internal/middleware"
	"construtora/internal/services"
)

// getUserAndRole reads the session set by the auth middleware. ok is false
// for anonymous requests.
func getUserAndRole(c *gin.Context) (userID int64, role string, ok bool) {
	v, exists := c.Get(middleware.CtxUserID)
	if !exists {
		return 0, "", false
	}
	userID, ok = v.(int64)
	role = c.GetString(middleware.CtxRole)
	return userID, role, ok
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + name})
		return 0, false
	}
	return id, true
}

// queryID parses an optional positive id query parameter.
func queryID(c *gin.Context, key string) (*int64, error) {
	v, ok := c.GetQuery(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid %s", key)
	}
	return &id, nil
}

// respondError maps service errors to the JSON error shape. Unknown errors
// are logged and answered with a generic 500.
func respondError(c *gin.Context, tag string, err error) {
	log := logging.FromContext(c)
	switch {
	case errors.Is(err, services.ErrValidation):
		log.Infof("%s[400] %v", tag, err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		log.Infof("%s[404] %v", tag, err)
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		log.Infof("%s[403] %v", tag, err)
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden"})
	case errors.Is(err, services.ErrInvalidCredentials):
		log.Infof("%s[401] %v", tag, err)
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	default:
		log.Errorf("%s[err] %v", tag, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func badRequest(c *gin.Context, tag string, err error) {
	logging.FromContext(c).Infof("%s[bind][err] %v", tag, err)
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}

// nullableID decodes an id that may be absent, null, "", a number or a
// numeric string. Set is false when the key was absent.
type nullableID struct {
	Set   bool
	Value *int64
}

func (n *nullableID) UnmarshalJSON(b []byte) error {
	n.Set = true
	n.Value = nil

	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			return nil
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id %s", string(b))
	}
	n.Value = &id
	return nil
}

// nullableString is the string counterpart of nullableID: Set is false when
// the key was absent, Value is nil for an explicit null.
type nullableString struct {
	Set   bool
	Value *string
}

func (n *nullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	n.Value = nil
	if strings.TrimSpace(string(b)) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("expected a string or null, got %s", string(b))
	}
	n.Value = &s
	return nil
}

// cleared reports an explicit null or a blank string.
func (n nullableString) cleared() bool {
	return n.Set && (n.Value == nil || strings.TrimSpace(*n.Value) == "")
}

// parseDate accepts a calendar date (2006-01-02) or an RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
