package debt

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const cacheKeyPrefix = "debts"

// listCacheKey derives the cache key for a list query. The key is built from
// the effective filter set after defaults are applied, so two requests that
// resolve to the same query always share a key, and any difference in status,
// page, limit or party filters yields a distinct key.
//
// Shape: debts:<user>:<status|all>:<page>:<limit>[:creditor:<id>][:debtor:<id>]
func listCacheKey(userID uuid.UUID, req ListDebtsRequest) string {
	status := "all"
	if req.Status != nil {
		status = req.Status.String()
	}

	parts := []string{
		cacheKeyPrefix,
		userID.String(),
		status,
		strconv.Itoa(req.Page),
		strconv.Itoa(req.Limit),
	}
	if req.CreditorID != nil {
		parts = append(parts, "creditor:"+req.CreditorID.String())
	}
	if req.DebtorID != nil {
		parts = append(parts, "debtor:"+req.DebtorID.String())
	}

	return strings.Join(parts, ":")
}

// userCachePattern matches every list key ever written for a user,
// regardless of its filter suffix.
func userCachePattern(userID uuid.UUID) string {
	return cacheKeyPrefix + ":" + userID.String() + ":*"
}
