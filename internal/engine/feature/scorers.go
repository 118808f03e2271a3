package feature

import (
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mindkey/fraud/internal/model"
)

// lowRiskCountries are the launch markets of the platform,
// scored against the low risk distribution.
var lowRiskCountries = map[string]struct{}{
	"NG": {},
	"KE": {},
	"GH": {},
	"ZA": {},
}

const (
	// newUserVelocity is the fixed velocity score for accounts without history.
	newUserVelocity = 0.1
	// neutralBehaviour is the fixed trust score for accounts without history.
	neutralBehaviour = 0.5
	// velocityLimit is the recent transaction count above which velocity scores high.
	velocityLimit = 10
)

func beta(alpha, b float64, src rand.Source) float64 {
	return distuv.Beta{Alpha: alpha, Beta: b, Src: src}.Rand()
}

// LocationRisk scores the transaction country, higher meaning riskier.
// A missing country degrades to the medium risk branch.
func LocationRisk(tx model.Transaction, src rand.Source) float64 {
	if _, ok := lowRiskCountries[tx.Location.Country]; ok {
		return beta(2, 8, src)
	}
	return beta(5, 5, src)
}

// DeviceRisk scores the client device, higher meaning riskier.
// A missing user agent degrades to the medium risk branch.
func DeviceRisk(tx model.Transaction, src rand.Source) float64 {
	ua := tx.DeviceInfo.UserAgent
	if strings.Contains(ua, "Mobile") && strings.Contains(ua, "Android") {
		return beta(2, 8, src)
	}
	return beta(4, 6, src)
}

// VelocityRisk scores the recent transaction rate, higher meaning riskier.
func VelocityRisk(history *model.UserHistory, src rand.Source) float64 {
	if history == nil {
		return newUserVelocity
	}
	if history.RecentTxCount > velocityLimit {
		return beta(8, 2, src)
	}
	return beta(2, 8, src)
}

// BehaviouralTrust scores account behaviour with trust polarity,
// higher meaning more trustworthy. The inverse polarity to the risk
// scores above is intentional and matches the training data.
func BehaviouralTrust(history *model.UserHistory, src rand.Source) float64 {
	if history == nil {
		return neutralBehaviour
	}
	return beta(6, 4, src)
}
