package service

import (
	"fmt"
	"time"

	pstrings "apisupport/internal/platform/strings"
	"apisupport/internal/services/api/queues/domain"

	"github.com/google/uuid"
)

// seedNamespace makes fixture uuids stable across runs
var seedNamespace = uuid.MustParse("3c1f7a52-9d0e-4b8a-a6f2-51e0c4d7b913")

var (
	seedNames  = []string{"front desk", "pharmacy", "returns", "customer service", "passport office", "deli counter"}
	seedVenues = []string{"lobby", "", "dock", "second floor", "", "market hall"}
	seedEpoch  = time.Date(2020, 1, 1, 8, 0, 0, 0, time.UTC)
)

// FixtureUUID is the uuid of the i-th fixture queue, starting at 1
func FixtureUUID(i int) string {
	return uuid.NewSHA1(seedNamespace, fmt.Appendf(nil, "queue-%d", i)).String()
}

// Fixtures returns n deterministic queues; every third is closed and some have no venue
func Fixtures(n int) []domain.Queue {
	out := make([]domain.Queue, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		k := (i - 1) % len(seedNames)
		status := domain.StatusOpen
		if i%3 == 0 {
			status = domain.StatusClosed
		}
		name := seedNames[k]
		if i > len(seedNames) {
			name = fmt.Sprintf("%s %d", name, (i-1)/len(seedNames)+1)
		}
		out = append(out, domain.Queue{
			UUID:      FixtureUUID(i),
			Name:      name,
			Venue:     pstrings.Ptr(seedVenues[k]),
			Status:    status,
			CreatedAt: seedEpoch.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}
