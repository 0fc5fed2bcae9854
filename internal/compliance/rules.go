package compliance

import (
	"regexp"
	"strings"
)

// Family identifies which catalog a rule belongs to
type Family string

const (
	FamilyProhibited Family = "prohibited"
	FamilyWarning    Family = "warning"
	FamilyDisclosure Family = "disclosure"
)

// Rule exposes a rule definition without its compiled pattern.
type Rule struct {
	ID      string `json:"id"`
	Family  Family `json:"family"`
	Group   string `json:"group"`
	Pattern string `json:"pattern"`
	Message string `json:"message,omitempty"`
}

type rule struct {
	Rule
	re *regexp.Regexp
}

const (
	groupSuperlative   = "superlative"
	groupInvestment    = "investment_claim"
	groupUrgency       = "urgency"
	groupNeighbourhood = "neighbourhood_claim"
	groupPrediction    = "price_prediction"
	groupScarcity      = "scarcity"
	groupYield         = "rental_yield"
	groupMarketValue   = "market_comparison"
	groupDevelopment   = "development_potential"
	groupSchoolZone    = "school_zone"
	groupTransport     = "transport_time"
	groupWeathertight  = "weathertightness"
	groupBodyCorp      = "body_corporate"
	groupHeritage      = "heritage"
	groupTenure        = "tenure"
)

// Order matters: issues are emitted in catalog order.
func prohibitedDefs() []Rule {
	return []Rule{
		{ID: "superlatives", Group: groupSuperlative, Pattern: `\b(best|perfect|amazing|stunning|incredible|unbeatable|ultimate|premier|exclusive)\b`},

		{ID: "guaranteed_return", Group: groupInvestment, Pattern: `\b(guaranteed|sure|certain|definite|proven) (return|investment|profit|gain)\b`},
		{ID: "opportunity_of_a_lifetime", Group: groupInvestment, Pattern: `\binvestment opportunity of a lifetime\b`},
		{ID: "cant_go_wrong", Group: groupInvestment, Pattern: `\bcan't go wrong\b`},

		{ID: "must_sell", Group: groupUrgency, Pattern: `\bmust sell\b`},
		{ID: "wont_last_long", Group: groupUrgency, Pattern: `\bwon't last long\b`},
		{ID: "act_fast", Group: groupUrgency, Pattern: `\bact fast\b`},
		{ID: "once_in_a_lifetime", Group: groupUrgency, Pattern: `\bonce in a lifetime\b`},

		{ID: "best_location", Group: groupNeighbourhood, Pattern: `\bbest (location|area|neighbourhood|street)\b`},
		{ID: "most_sought_after", Group: groupNeighbourhood, Pattern: `\bmost sought.?after\b`},
		{ID: "tightly_held", Group: groupNeighbourhood, Pattern: `\btightly held\b`},

		{ID: "prices_will_rise", Group: groupPrediction, Pattern: `\b(prices? )?(will|going to|set to|bound to) (rise|increase|go up|double|triple)\b`},
		{ID: "can_only_go_up", Group: groupPrediction, Pattern: `\bcan only go up\b`},

		{ID: "last_one", Group: groupScarcity, Pattern: `\blast (one|property|house|home|unit)\b`},
		{ID: "only_one_left", Group: groupScarcity, Pattern: `\bonly one (left|available|remaining)\b`},
	}
}

func warningDefs() []Rule {
	return []Rule{
		{ID: "rental_yield", Group: groupYield, Pattern: `\b\d+(\.\d+)?%\s*(rental\s*)?(yield|return)\b`},

		{ID: "market_value", Group: groupMarketValue, Pattern: `\b(above|below|under|over)\s*market\s*(value|price)\b`},
		{ID: "great_value", Group: groupMarketValue, Pattern: `\bgreat\s*value\b`},
		{ID: "well_priced", Group: groupMarketValue, Pattern: `\bwell\s*priced\b`},

		{ID: "development_potential", Group: groupDevelopment, Pattern: `\b(development|subdivision)\s*(potential|opportunity)\b`},
		{ID: "could_be_subdivided", Group: groupDevelopment, Pattern: `\bcould be subdivided\b`},

		{ID: "school_zone", Group: groupSchoolZone, Pattern: `\b(zoned|in\s*zone)\s*(for|to)\s*[\w\s]*(school|college)\b`},

		{ID: "minutes_to_transport", Group: groupTransport, Pattern: `\b\d+\s*min(utes?)?\s*(walk|drive|bus|train)\s*(to|from)\b`},
	}
}

func disclosureDefs() []Rule {
	return []Rule{
		{
			ID:      "weathertightness",
			Group:   groupWeathertight,
			Pattern: `\b(leaky|weathertight|weather.?tight|monolithic|plaster)\b`,
			Message: "Properties with weathertightness concerns must include appropriate disclosure statements",
		},
		{
			ID:      "body_corporate",
			Group:   groupBodyCorp,
			Pattern: `\b(apartment|unit|body\s*corporate|owners\s*corporation)\b`,
			Message: "Body corporate/strata properties should disclose fees and any special levies",
		},
		{
			ID:      "heritage",
			Group:   groupHeritage,
			Pattern: `\b(heritage|historic|protected|character|villa|bungalow)\b`,
			Message: "Heritage or character properties should disclose any council protections or restrictions",
		},
		{
			ID:      "non_standard_tenure",
			Group:   groupTenure,
			Pattern: `\b(cross.?lease|company\s*share|licence\s*to\s*occupy)\b`,
			Message: "Non-standard tenure types require clear explanation and disclosure",
		},
	}
}

// promotionalWords feeds the promotional-density heuristic. It overlaps the
// superlatives rule on purpose; both count.
var promotionalWords = regexp.MustCompile(`(?i)\b(amazing|incredible|stunning|perfect|dream|paradise|luxury|executive|prestigious)\b`)

// unicodeSpace widens \s to every Unicode space separator plus \v and BOM,
// so NBSP and friends separate words the same way ASCII spaces do.
var unicodeSpace = strings.NewReplacer(
	`[\w\s]`, `[\w\s\x0B\p{Z}\x{FEFF}]`,
	`\s`, `[\s\x0B\p{Z}\x{FEFF}]`,
)

var (
	prohibitedRules = compileRules(FamilyProhibited, prohibitedDefs())
	warningRules    = compileRules(FamilyWarning, warningDefs())
	disclosureRules = compileRules(FamilyDisclosure, disclosureDefs())
)

func compileRules(family Family, defs []Rule) []rule {
	out := make([]rule, 0, len(defs))
	for _, d := range defs {
		d.Family = family
		out = append(out, rule{
			Rule: d,
			re:   regexp.MustCompile("(?i)" + unicodeSpace.Replace(d.Pattern)),
		})
	}
	return out
}

// Rules returns every rule definition in evaluation order.
func Rules() []Rule {
	out := make([]Rule, 0, len(prohibitedRules)+len(warningRules)+len(disclosureRules))
	for _, set := range [][]rule{prohibitedRules, warningRules, disclosureRules} {
		for _, r := range set {
			out = append(out, r.Rule)
		}
	}
	return out
}
