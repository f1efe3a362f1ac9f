package eliza

import (
	"fmt"
	"strings"
)

// Canned response selection. For a given role the reply is a pure function of
// the message text: a substring decision tree picks one of a fixed set of
// paragraphs, with a templated echo of the input as the fallback.

func responseFor(role Role, message string, lowered string) string {
	switch role {
	case RoleGovernance:
		return governanceResponse(message, lowered)
	case RoleTreasury:
		return treasuryResponse(message, lowered)
	case RoleSecurity:
		return securityResponse(message, lowered)
	}
	return fmt.Sprintf("I understand you're asking about '%s'. As an AI agent, I'm here to help with DAO operations.", message)
}

func governanceResponse(message string, lowered string) string {
	switch {
	case strings.Contains(lowered, "proposal"):
		if containsAny(lowered, []string{"1", "one", "first"}) {
			return "Based on my analysis of Proposal #1 'Increase Treasury Allocation for AI Development', " +
				"I recommend supporting this proposal. It shows strong community support with 78% approval rate " +
				"and aligns with our long-term strategic goals. The treasury can accommodate this allocation " +
				"without compromising operational reserves. The proposal demonstrates clear benefits for " +
				"enhancing our AI capabilities and autonomous operations."
		}
		return "I've analyzed the current proposals and can provide detailed insights. Proposal #1 has " +
			"strong support for AI development funding, Proposal #2 focuses on market analysis capabilities, " +
			"and Proposal #3 has been successfully executed for ZK infrastructure. Each proposal is " +
			"evaluated based on community benefit, sustainability, and risk factors."
	case strings.Contains(lowered, "vote") || strings.Contains(lowered, "voting"):
		return "Current voting analysis shows healthy participation with 67% of token holders actively " +
			"engaging in governance. I recommend implementing quadratic voting for future proposals " +
			"to ensure more equitable representation. Proposal #2 currently needs 340 more votes to " +
			"reach quorum. The voting mechanism ensures democratic decision-making while preventing " +
			"concentration of power."
	case strings.Contains(lowered, "governance"):
		return "Our governance system operates on principles of transparency, decentralization, and " +
			"community participation. Token holders can create proposals, vote on decisions, and " +
			"participate in autonomous execution. The AI agents provide analysis and recommendations " +
			"but final decisions rest with the community. Current governance health metrics show " +
			"strong engagement and effective decision-making processes."
	}
	return fmt.Sprintf("As your governance AI agent, I can help with proposal analysis, voting patterns, "+
		"and governance optimization. Regarding '%s', I can provide insights on how "+
		"this relates to our DAO's governance structure and decision-making processes. "+
		"What specific governance aspect would you like me to analyze?", message)
}

func treasuryResponse(message string, lowered string) string {
	switch {
	case strings.Contains(lowered, "treasury") || strings.Contains(lowered, "financial"):
		return "Current treasury status: $2.4M TVL with 15% growth this month. Asset allocation is " +
			"optimized across DeFi protocols with 94% efficiency rating. I've identified 3 new " +
			"yield opportunities that could increase returns by 8-12% annually while maintaining " +
			"our risk parameters. The treasury maintains 20% in stable assets for operational " +
			"liquidity and 80% in yield-generating positions."
	case strings.Contains(lowered, "allocation") || strings.Contains(lowered, "funds"):
		return "Treasury allocation follows our strategic framework: 60% in high-yield DeFi protocols, " +
			"20% in stable reserves, 15% in strategic investments, and 5% for operational expenses. " +
			"This allocation has generated consistent returns while maintaining liquidity for " +
			"governance decisions. I continuously monitor market conditions and rebalance positions " +
			"to optimize risk-adjusted returns."
	case strings.Contains(lowered, "performance") || strings.Contains(lowered, "returns"):
		return "Treasury performance metrics: 12.8% annual yield, 94% capital efficiency, and 2.1% " +
			"volatility. Our diversified approach across multiple protocols has outperformed " +
			"benchmark indices while maintaining lower risk. Recent optimizations have improved " +
			"gas efficiency by 23% and increased yield capture by 8.5%. All positions are " +
			"continuously monitored for optimal performance."
	}
	return fmt.Sprintf("As the treasury management agent, I oversee financial operations, asset allocation, "+
		"and yield optimization. Regarding '%s', I can provide analysis on how this "+
		"impacts our financial position and recommend appropriate treasury actions. "+
		"What specific financial aspect would you like me to analyze?", message)
}

func securityResponse(message string, lowered string) string {
	switch {
	case strings.Contains(lowered, "security") || strings.Contains(lowered, "audit"):
		return "Security audit completed successfully. All smart contracts are secure with no critical " +
			"vulnerabilities detected. I've implemented additional monitoring for unusual transaction " +
			"patterns and updated our risk assessment protocols. Current threat level: LOW. " +
			"All systems are operating within normal security parameters with enhanced monitoring " +
			"active across all critical components."
	case strings.Contains(lowered, "risk"):
		return "Current risk assessment shows minimal exposure across all vectors. Smart contract risk: " +
			"LOW (audited and verified), Market risk: MEDIUM (managed through diversification), " +
			"Operational risk: LOW (automated systems with redundancy). I continuously monitor " +
			"for emerging threats and maintain updated incident response procedures. All risk " +
			"metrics are within acceptable thresholds."
	case strings.Contains(lowered, "threat") || strings.Contains(lowered, "vulnerability"):
		return "Threat monitoring systems are active and detecting no current threats. Vulnerability " +
			"scans are performed continuously with automated patching for non-critical issues. " +
			"The last comprehensive security review identified zero high-severity vulnerabilities. " +
			"All access controls are properly configured and monitored. Security posture remains " +
			"strong with proactive threat detection capabilities."
	}
	return fmt.Sprintf("As the security agent, I monitor risks, conduct audits, and ensure system safety. "+
		"Regarding '%s', I can assess security implications and provide risk analysis. "+
		"All systems are currently secure with active monitoring. What specific security "+
		"concern can I help you with?", message)
}
