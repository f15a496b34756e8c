package agents

import (
	"encoding/json"
	"fmt"
)

func planningPrompt(userInput string) string {
	return fmt.Sprintf(`You are a Discovery Agent specialized in discovering competitors.

Business: %s

Create 4 diverse search queries to find competitors. Consider:
- Direct competitors (same product/service)
- Adjacent competitors (similar market)
- Alternative solutions
- Emerging players

Return ONLY a JSON array of search queries:
["query1", "query2", "query3", "query4"]`, userInput)
}

func rankingPrompt(userInput string, raw []RawCompetitor) string {
	data, _ := json.MarshalIndent(raw, "", "  ")

	return fmt.Sprintf(`You are analyzing competitors for: %s

Raw competitor data:
%s

Select the top 5 most relevant competitors and enhance the data.

Return ONLY a JSON array:
[
  {
    "name": "Company Name",
    "url": "company.com",
    "description": "One-sentence description",
    "category": "Market category",
    "relevanceScore": 8,
    "marketPosition": "leader|challenger|emerging",
    "relevanceReason": "Why this is a direct competitor"
  }
]`, userInput, data)
}

func analysisPrompt(userInput string, competitors []Competitor) string {
	data, _ := json.MarshalIndent(competitors, "", "  ")

	return fmt.Sprintf(`You are an Analysis Agent specialized in competitive intelligence.

Business: %s

Competitors:
%s

Provide a comprehensive competitive analysis with these sections:

## Market Positioning & Gaps
Analyze where competitors are positioned and what market gaps exist.

## Competitor Weaknesses
Identify specific weaknesses and vulnerabilities of each competitor.

## Pricing & Business Model Insights
Analyze pricing strategies and business models.

## Recommended Features
Based on gaps, what features should this business build?

## Growth Opportunities
What market opportunities exist based on competitive landscape?

## Key Strategic Insights
Most important strategic takeaways.

Provide detailed, specific analysis with actionable insights.`, userInput, data)
}

func comparisonPrompt(userInput string, competitors []Competitor) string {
	data, _ := json.MarshalIndent(competitors, "", "  ")

	return fmt.Sprintf(`You are a Comparison Agent creating structured competitor comparisons.

Business: %s

Competitors:
%s

Create a feature comparison matrix with 10-12 key features.

Return ONLY valid JSON:
{
  "features": [
    {
      "name": "Feature Name",
      "yourOpportunity": "Yes|No|Build",
      "competitors": {
        "Competitor A": "Yes|No|Partial|Premium",
        "Competitor B": "Yes|No|Partial|Premium"
      },
      "strategicValue": "Why this feature matters",
      "implementationComplexity": "Low|Medium|High"
    }
  ]
}`, userInput, data)
}

func strategyPrompt(userInput, analysisExcerpt string, matrix FeatureMatrix) string {
	data, _ := json.MarshalIndent(matrix, "", "  ")

	return fmt.Sprintf(`You are creating strategic recommendations.

Business: %s

Competitive Analysis Summary:
%s

Feature Comparison:
%s

Provide strategic recommendations in these categories:

## Immediate Actions (0-3 months)
4-5 specific high-impact actions to take now.

## Strategic Initiatives (3-12 months)
4-5 longer-term strategic moves.

## Competitive Moats to Build
4-5 sustainable competitive advantages to develop.

## Market Opportunities to Pursue
4-5 untapped market opportunities based on competitor gaps.

Be specific, actionable, and prioritized.`, userInput, analysisExcerpt, data)
}
