package logic

import (
	"context"
	"magpie/client"
	"magpie/shared"
	"sync"
)

// PageResult is one account's slice of a multi-account page fetch. Err is set
// when that account's call failed; other accounts are unaffected.
type PageResult[T any] struct {
	AccountId int64
	MaxId     int64
	SinceId   int64
	Limit     int
	Items     []T
	Err       error
}

// IdsValid reports whether a per-account id array lines up with the account
// array. Anything else (nil, wrong length) means the bounds are ignored
// wholesale.
func IdsValid(ids, accountIds []int64) bool {
	return ids != nil && len(ids) == len(accountIds)
}

// FetchPages pulls one page per account in parallel. maxIds and sinceIds are
// positional and only honored when their length matches accountIds; values
// at or below zero mean "no bound" for that position. Accounts with no
// resolvable client are skipped without a result entry.
func FetchPages[T any](
	ctx context.Context,
	logger shared.ILogger,
	resolver client.IResolver,
	accountIds, maxIds, sinceIds []int64,
	limit int,
	fetch func(ctx context.Context, cl client.IClient, paging client.Paging) ([]T, error),
) []PageResult[T] {

	maxIdsValid := IdsValid(maxIds, accountIds)
	sinceIdsValid := IdsValid(sinceIds, accountIds)

	results := make([]*PageResult[T], len(accountIds))
	var wg sync.WaitGroup
	for i, accountId := range accountIds {
		accountId := accountId
		cl := resolver.Client(accountId)
		if cl == nil {
			logger.Debugf("No client for account %d; skipping fetch", accountId)
			continue
		}
		res := &PageResult[T]{AccountId: accountId, Limit: limit}
		if maxIdsValid {
			res.MaxId = maxIds[i]
		}
		if sinceIdsValid {
			res.SinceId = sinceIds[i]
		}
		results[i] = res
		wg.Add(1)
		go func() {
			defer wg.Done()
			paging := client.Paging{Count: limit}
			if res.MaxId > 0 {
				paging.MaxId = res.MaxId
			}
			if res.SinceId > 0 {
				paging.SinceId = res.SinceId
			}
			res.Items, res.Err = fetch(ctx, cl, paging)
			if res.Err != nil {
				logger.Warnf("Fetch failed for account %d: %v", accountId, res.Err)
			}
		}()
	}
	wg.Wait()

	compact := make([]PageResult[T], 0, len(results))
	for _, res := range results {
		if res != nil {
			compact = append(compact, *res)
		}
	}
	return compact
}
