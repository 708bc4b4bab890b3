package services

import (
	"barbearia-backend/models"
	"barbearia-backend/utils"

	"github.com/google/uuid"
)

// Session is the logged-in user as seen by every component that needs it;
// handlers build it from JWT claims instead of reading ambient state.
type Session struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
	Role        string
}

// StaffResolver maps a session onto the set of roster ids that represent
// the same physical person. The fuzzy implementation exists because barbers
// sign in with accounts that rarely match the manager-typed roster entry
// letter for letter; an explicit account-linking step would make it
// unnecessary, so the strategy stays behind an interface.
type StaffResolver interface {
	ResolveStaffIDs(session Session, roster []models.User) map[uuid.UUID]struct{}
}

// FuzzyResolver matches by normalized email equality and by name-token
// overlap.
type FuzzyResolver struct{}

// minimum shared significant tokens for a multi-word name match
const minTokenOverlap = 2

// single-word names only match exactly, and only when long enough to not
// collide on common short names
const minExactNameLen = 4

func (FuzzyResolver) ResolveStaffIDs(session Session, roster []models.User) map[uuid.UUID]struct{} {
	ids := map[uuid.UUID]struct{}{
		session.UserID: {},
	}

	email := utils.Normalize(session.Email)
	name := utils.Normalize(session.DisplayName)
	tokens := utils.NameTokens(session.DisplayName)

	for _, record := range roster {
		if email != "" && utils.Normalize(record.Email) == email {
			ids[record.ID] = struct{}{}
			continue
		}
		if matchName(name, tokens, record.Name) {
			ids[record.ID] = struct{}{}
		}
	}
	return ids
}

func matchName(sessionName string, sessionTokens []string, rosterName string) bool {
	rosterTokens := utils.NameTokens(rosterName)

	if len(sessionTokens) >= 2 && len(rosterTokens) >= 2 {
		shared := 0
		set := map[string]struct{}{}
		for _, tok := range sessionTokens {
			set[tok] = struct{}{}
		}
		for _, tok := range rosterTokens {
			if _, ok := set[tok]; ok {
				shared++
			}
		}
		return shared >= minTokenOverlap
	}

	// Either side reduced to a single significant token: require exact
	// normalized equality of the full names.
	normalized := utils.Normalize(rosterName)
	return sessionName != "" && sessionName == normalized && len(sessionName) >= minExactNameLen
}
