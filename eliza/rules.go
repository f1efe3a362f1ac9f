package eliza

import (
	"fmt"
	"regexp"
	"strings"
)

// Classification is rule-table driven: each table is an ordered list of
// (keyword set, label) pairs evaluated in priority order, first match wins.

type keywordRule struct {
	label    string
	keywords []string
}

const (
	IntentGovernance  = "governance_inquiry"
	IntentTreasury    = "treasury_inquiry"
	IntentSecurity    = "security_inquiry"
	IntentStatus      = "status_request"
	IntentInformation = "information_request"
	IntentGeneral     = "general_inquiry"
)

var intentRules = []keywordRule{
	{IntentGovernance, []string{"proposal", "vote", "voting", "governance"}},
	{IntentTreasury, []string{"treasury", "financial", "money", "funds", "allocation"}},
	{IntentSecurity, []string{"security", "risk", "audit", "threat", "vulnerability"}},
	{IntentStatus, []string{"status", "update", "report", "summary"}},
	{IntentInformation, []string{"help", "how", "what", "explain"}},
}

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

var positiveWords = []string{"good", "great", "excellent", "support", "approve", "like", "love"}
var negativeWords = []string{"bad", "terrible", "against", "oppose", "dislike", "hate", "concern"}

const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

var urgencyRules = []keywordRule{
	{UrgencyHigh, []string{"urgent", "emergency", "critical", "immediate", "asap", "now"}},
	{UrgencyMedium, []string{"soon", "quickly", "fast"}},
}

var actionWords = []string{"create", "execute", "implement", "deploy", "vote", "transfer", "allocate"}

var proposalRef = regexp.MustCompile(`proposal\s*#?(\d+)`)

func containsAny(message string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}

func classifyIntent(message string) string {
	for _, rule := range intentRules {
		if containsAny(message, rule.keywords) {
			return rule.label
		}
	}
	return IntentGeneral
}

func analyzeSentiment(message string) string {
	positive := 0
	for _, word := range positiveWords {
		if strings.Contains(message, word) {
			positive++
		}
	}
	negative := 0
	for _, word := range negativeWords {
		if strings.Contains(message, word) {
			negative++
		}
	}
	switch {
	case positive > negative:
		return SentimentPositive
	case negative > positive:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func assessUrgency(message string) string {
	for _, rule := range urgencyRules {
		if containsAny(message, rule.keywords) {
			return rule.label
		}
	}
	return UrgencyLow
}

func requiresAction(message string) bool {
	return containsAny(message, actionWords)
}

func extractEntities(message string) []string {
	entities := make([]string, 0)
	if strings.Contains(message, "proposal") {
		for _, match := range proposalRef.FindAllStringSubmatch(message, -1) {
			entities = append(entities, fmt.Sprintf("proposal_%s", match[1]))
		}
	}
	if strings.Contains(message, "xmrt") || strings.Contains(message, "token") {
		entities = append(entities, "xmrt_token")
	}
	if strings.Contains(message, "dao") {
		entities = append(entities, "dao")
	}
	return entities
}

func analyzeContext(message string) Context {
	return Context{
		Intent:         classifyIntent(message),
		Entities:       extractEntities(message),
		Sentiment:      analyzeSentiment(message),
		Urgency:        assessUrgency(message),
		RequiresAction: requiresAction(message),
	}
}
