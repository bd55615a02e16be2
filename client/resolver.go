package client

import (
	"magpie/shared"
	"strconv"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../test/mocks/mock_resolver.go -package mocks magpie/client IResolver

// IResolver maps signed-in account ids to remote clients. A nil client means
// no authenticated session exists for that id; callers skip such accounts
// without recording an error.
type IResolver interface {
	Client(accountId int64) IClient
	ActivatedAccountIds() []int64
	ScreenName(accountId int64) string
}

type resolver struct {
	logger  shared.ILogger
	infos   map[int64]*shared.AccountInfo
	clients map[int64]IClient
	order   []int64
}

func NewResolver(cfg *shared.Config, logger shared.ILogger, userAgent shared.IUserAgent) IResolver {

	res := resolver{
		logger:  logger,
		infos:   make(map[int64]*shared.AccountInfo),
		clients: make(map[int64]IClient),
	}
	for _, acct := range cfg.Accounts {
		res.infos[acct.Id] = acct
		if !acct.Active {
			continue
		}
		token, ok := cfg.Secrets.Tokens[strconv.FormatInt(acct.Id, 10)]
		if !ok {
			logger.Warnf("No token for account %d (%s); account will not sync", acct.Id, acct.ScreenName)
			continue
		}
		res.clients[acct.Id] = newHttpClient(logger, userAgent, acct.ApiRoot, token)
		res.order = append(res.order, acct.Id)
	}
	return &res
}

func (r *resolver) Client(accountId int64) IClient {
	return r.clients[accountId]
}

func (r *resolver) ActivatedAccountIds() []int64 {
	res := make([]int64, len(r.order))
	copy(res, r.order)
	return res
}

func (r *resolver) ScreenName(accountId int64) string {
	if info, ok := r.infos[accountId]; ok {
		return info.ScreenName
	}
	return ""
}
