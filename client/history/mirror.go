package history

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mindkey/fraud/internal/model"
	cointime "github.com/mindkey/fraud/internal/time"
)

const (
	transactionsLimit = 25
	recentWindow      = 24 * time.Hour
	// defaultHoursSinceLastTx mirrors the cold start default of the extractor.
	defaultHoursSinceLastTx = 24
)

// Mirror assembles a user history from a ledger mirror node rest api.
type Mirror struct {
	baseURL string
	client  *http.Client
	clock   cointime.Clock
}

// NewMirror creates a mirror node source for the given base url,
// e.g. https://testnet.mirrornode.hedera.com/api/v1 .
func NewMirror(baseURL string) *Mirror {
	return &Mirror{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		clock:   cointime.Wall,
	}
}

// WithClock fixes the instant the history ages are computed against.
func (m *Mirror) WithClock(clock cointime.Clock) *Mirror {
	m.clock = clock
	return m
}

type accountResponse struct {
	Account          string `json:"account"`
	CreatedTimestamp string `json:"created_timestamp"`
	Balance          struct {
		Balance int64 `json:"balance"`
	} `json:"balance"`
}

type transactionsResponse struct {
	Transactions []struct {
		ConsensusTimestamp string `json:"consensus_timestamp"`
		Transfers          []struct {
			Account string `json:"account"`
			Amount  int64  `json:"amount"`
		} `json:"transfers"`
	} `json:"transactions"`
}

// Get fetches the account and its recent transactions and folds them
// into the history aggregate the scoring core consumes.
func (m *Mirror) Get(ctx context.Context, account string) (*model.UserHistory, error) {
	var acc accountResponse
	if err := m.get(ctx, fmt.Sprintf("%s/accounts/%s", m.baseURL, account), &acc); err != nil {
		return nil, fmt.Errorf("could not get account '%s': %w", account, err)
	}

	var txs transactionsResponse
	url := fmt.Sprintf("%s/accounts/%s/transactions?limit=%d", m.baseURL, account, transactionsLimit)
	if err := m.get(ctx, url, &txs); err != nil {
		return nil, fmt.Errorf("could not get transactions for '%s': %w", account, err)
	}

	now := m.clock()

	history := &model.UserHistory{
		HoursSinceLastTx: defaultHoursSinceLastTx,
	}

	if created, err := parseTimestamp(acc.CreatedTimestamp); err == nil {
		history.AccountAgeDays = int(now.Sub(created).Hours() / 24)
	} else {
		log.Warn().Str("account", account).Str("created", acc.CreatedTimestamp).Msg("could not parse created timestamp")
	}

	var total float64
	var last time.Time
	for _, tx := range txs.Transactions {
		history.TransactionCount++
		for _, transfer := range tx.Transfers {
			if transfer.Account == account {
				total += math.Abs(float64(transfer.Amount))
			}
		}
		at, err := parseTimestamp(tx.ConsensusTimestamp)
		if err != nil {
			continue
		}
		if at.After(last) {
			last = at
		}
		if now.Sub(at) <= recentWindow {
			history.RecentTxCount++
		}
	}

	if history.TransactionCount > 0 {
		history.AvgAmount = total / float64(history.TransactionCount)
	}
	if !last.IsZero() {
		history.HoursSinceLastTx = now.Sub(last).Hours()
	}

	return history, nil
}

func (m *Mirror) get(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	response, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("could not execute request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("mirror node returned %d for '%s'", response.StatusCode, url)
	}
	if err := json.NewDecoder(response.Body).Decode(v); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	return nil
}

// parseTimestamp parses the mirror node seconds.nanos format.
func parseTimestamp(ts string) (time.Time, error) {
	if ts == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	seconds, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse timestamp '%s': %w", ts, err)
	}
	sec, frac := math.Modf(seconds)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))), nil
}
