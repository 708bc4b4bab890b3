package services

import (
	"testing"

	"barbearia-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staffRecord(name, email string) models.User {
	return models.User{ID: uuid.New(), Name: name, Email: email, Role: models.RoleBarber}
}

func TestResolveAlwaysIncludesOwnID(t *testing.T) {
	resolver := FuzzyResolver{}
	session := Session{UserID: uuid.New(), Email: "x@y.com", DisplayName: "Alguém"}

	ids := resolver.ResolveStaffIDs(session, nil)
	require.Len(t, ids, 1)
	assert.Contains(t, ids, session.UserID)

	ids = resolver.ResolveStaffIDs(session, []models.User{staffRecord("Outro Barbeiro", "outro@shop.com")})
	assert.Contains(t, ids, session.UserID)
}

func TestResolveExactEmailMatch(t *testing.T) {
	resolver := FuzzyResolver{}
	record := staffRecord("Perfil Antigo", "Luiz.Kosse@GMAIL.com")
	session := Session{UserID: uuid.New(), Email: "luiz.kosse@gmail.com", DisplayName: "LK"}

	ids := resolver.ResolveStaffIDs(session, []models.User{record})
	assert.Contains(t, ids, record.ID)
}

func TestResolvePartialNameWithDiacritics(t *testing.T) {
	resolver := FuzzyResolver{}
	record := staffRecord("Luiz Felipe Marçal Kosse", "placeholder@shop.com")
	session := Session{
		UserID:      uuid.New(),
		Email:       "luizkosse@gmail.com",
		DisplayName: "Luiz Kosse",
	}

	ids := resolver.ResolveStaffIDs(session, []models.User{record})
	assert.Contains(t, ids, record.ID, "two shared tokens (luiz, kosse) must match")
}

func TestResolveSingleTokenFallback(t *testing.T) {
	resolver := FuzzyResolver{}
	lucas := staffRecord("Lucas", "")
	leo := staffRecord("Leo", "")

	session := Session{UserID: uuid.New(), DisplayName: "Lucas"}
	ids := resolver.ResolveStaffIDs(session, []models.User{lucas, leo})
	assert.Contains(t, ids, lucas.ID, "exact single-token name of length >= 4 matches")
	assert.NotContains(t, ids, leo.ID)

	// short names never match on the fallback rule
	shortSession := Session{UserID: uuid.New(), DisplayName: "Leo"}
	ids = resolver.ResolveStaffIDs(shortSession, []models.User{leo})
	assert.NotContains(t, ids, leo.ID)
}

func TestResolveRequiresTwoSharedTokens(t *testing.T) {
	resolver := FuzzyResolver{}
	record := staffRecord("Luiz Henrique Souza", "")
	session := Session{UserID: uuid.New(), DisplayName: "Luiz Kosse"}

	ids := resolver.ResolveStaffIDs(session, []models.User{record})
	assert.NotContains(t, ids, record.ID, "one shared token is not enough")
}

func TestResolveIsIdempotent(t *testing.T) {
	resolver := FuzzyResolver{}
	roster := []models.User{
		staffRecord("Luiz Felipe Marçal Kosse", "a@shop.com"),
		staffRecord("Lucas", "b@shop.com"),
		staffRecord("João da Silva", "c@shop.com"),
	}
	session := Session{UserID: uuid.New(), Email: "a@shop.com", DisplayName: "Luiz Kosse"}

	first := resolver.ResolveStaffIDs(session, roster)
	second := resolver.ResolveStaffIDs(session, roster)
	assert.Equal(t, first, second)
}
