package controllers

import (
	"barbearia-backend/cache"
	"barbearia-backend/services"
	"barbearia-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Package-level collaborators, wired once from main.
var (
	TxStore    store.TransactionStore
	Resolver   services.StaffResolver = services.FuzzyResolver{}
	Identities cache.IdentityCache    = cache.NoopIdentityCache{}
)

func Setup(txStore store.TransactionStore, identities cache.IdentityCache) {
	TxStore = txStore
	if identities != nil {
		Identities = identities
	}
}

// CurrentSession rebuilds the logged-in user from the JWT claims the auth
// middleware stored on the context.
func CurrentSession(c *gin.Context) (services.Session, bool) {
	rawID, exists := c.Get("userId")
	if !exists {
		return services.Session{}, false
	}
	idStr, _ := rawID.(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return services.Session{}, false
	}

	email, _ := c.Get("email")
	name, _ := c.Get("name")
	role, _ := c.Get("role")

	return services.Session{
		UserID:      id,
		Email:       asString(email),
		DisplayName: asString(name),
		Role:        asString(role),
	}, true
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
