package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// The store owns identity generation: ids are prefixed with the record kind
// and a creation timestamp, matching the id shapes of stored data
// ("exp-<timestamp>", "settlement-<timestamp>-<random>", ...).

func newUserID() string {
	return fmt.Sprintf("user-%d-%s", time.Now().UnixNano(), randomSuffix())
}

func newGroupID() string {
	return fmt.Sprintf("group-%d-%s", time.Now().UnixNano(), randomSuffix())
}

func newExpenseID() string {
	return fmt.Sprintf("exp-%d", time.Now().UnixNano())
}

func newSettlementID() string {
	return fmt.Sprintf("settlement-%d-%s", time.Now().UnixNano(), randomSuffix())
}

func randomSuffix() string {
	return uuid.NewString()[:8]
}
