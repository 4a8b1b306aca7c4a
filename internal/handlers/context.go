package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID reads the caller id set by the auth middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, error) {
	raw, exists := c.Get("userId")
	if !exists {
		return primitive.NilObjectID, errors.New("no authenticated user in context")
	}
	idStr, ok := raw.(string)
	if !ok {
		return primitive.NilObjectID, errors.New("malformed user id in context")
	}
	return primitiveIDFromHex(idStr)
}

func currentRole(c *gin.Context) string {
	raw, _ := c.Get("role")
	role, _ := raw.(string)
	return role
}

func primitiveIDFromHex(s string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(s)
}
