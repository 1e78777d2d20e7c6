package chainapi

import (
	"context"
	"math/big"

	"stakeview/internal/evm"
)

// MaxDownlineDepth caps how many downline levels any account can unlock.
const MaxDownlineDepth = 15

type LevelMeta struct {
	Level             int    `json:"level"`
	RewardPercent     string `json:"reward_percent"`
	RequiredDirects   int    `json:"required_directs"`
	RequiredTeamStake string `json:"required_team_stake"`
	Title             string `json:"title"`
}

type RankMeta struct {
	Rank              int    `json:"rank"`
	RewardPercent     string `json:"reward_percent"`
	RequiredTeamStake string `json:"required_team_stake"`
	Title             string `json:"title"`
}

// LevelInfo returns nil for level 0: "no level" has no metadata row.
func (app *App) LevelInfo(ctx context.Context, level int) (*LevelMeta, error) {
	if level <= 0 || level > MaxDownlineDepth {
		return nil, nil
	}
	raw, err := app.Staking.Call("levelMeta", big.NewInt(int64(level)))
	if err != nil {
		return nil, evm.Classify(err)
	}
	fields := tuple(raw)
	return &LevelMeta{
		Level:             level,
		RewardPercent:     toAmount(field(fields, 0)),
		RequiredDirects:   toInt(field(fields, 1)),
		RequiredTeamStake: toAmount(field(fields, 2)),
		Title:             toString(field(fields, 3)),
	}, nil
}

func (app *App) RankInfo(ctx context.Context, rank int) (*RankMeta, error) {
	if rank <= 0 {
		return nil, nil
	}
	raw, err := app.Staking.Call("rankMeta", big.NewInt(int64(rank)))
	if err != nil {
		return nil, evm.Classify(err)
	}
	fields := tuple(raw)
	return &RankMeta{
		Rank:              rank,
		RewardPercent:     toAmount(field(fields, 0)),
		RequiredTeamStake: toAmount(field(fields, 1)),
		Title:             toString(field(fields, 2)),
	}, nil
}
