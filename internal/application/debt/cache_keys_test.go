package debt

import (
	"testing"

	domaindebt "github.com/debttrack/backend/internal/domain/debt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestListCacheKey_Deterministic(t *testing.T) {
	userID := uuid.New()
	req := ListDebtsRequest{Page: 2, Limit: 25}

	assert.Equal(t, listCacheKey(userID, req), listCacheKey(userID, req))
}

func TestListCacheKey_Shape(t *testing.T) {
	userID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	status := domaindebt.DebtStatusPending

	key := listCacheKey(userID, ListDebtsRequest{Status: &status, Page: 1, Limit: 10})
	assert.Equal(t, "debts:11111111-1111-1111-1111-111111111111:PENDING:1:10", key)

	key = listCacheKey(userID, ListDebtsRequest{Page: 3, Limit: 50})
	assert.Equal(t, "debts:11111111-1111-1111-1111-111111111111:all:3:50", key)
}

func TestListCacheKey_DistinctPerFilter(t *testing.T) {
	userID := uuid.New()
	creditorID := uuid.New()
	status := domaindebt.DebtStatusPaid

	base := ListDebtsRequest{Page: 1, Limit: 10}
	variants := []ListDebtsRequest{
		{Page: 2, Limit: 10},
		{Page: 1, Limit: 20},
		{Status: &status, Page: 1, Limit: 10},
		{CreditorID: &creditorID, Page: 1, Limit: 10},
		{DebtorID: &creditorID, Page: 1, Limit: 10},
	}

	baseKey := listCacheKey(userID, base)
	seen := map[string]bool{baseKey: true}
	for _, v := range variants {
		key := listCacheKey(userID, v)
		assert.False(t, seen[key], "expected distinct key for %+v", v)
		seen[key] = true
	}

	// Same query for a different user never collides
	assert.NotEqual(t, baseKey, listCacheKey(uuid.New(), base))
}

func TestUserCachePattern(t *testing.T) {
	userID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	pattern := userCachePattern(userID)

	assert.Equal(t, "debts:22222222-2222-2222-2222-222222222222:*", pattern)
}
