package insight

import (
	"fmt"
	"strings"
)

// buildSummaryPrompt creates the executive-summary prompt.
func buildSummaryPrompt(text string) string {
	var sb strings.Builder

	sb.WriteString("You are a senior equity research analyst who explains financials in simple, beginner-friendly English.\n")
	sb.WriteString("Rewrite the text into EXACTLY 5 bullet points.\n\n")
	sb.WriteString("STRICT FORMAT (follow exactly):\n")
	sb.WriteString("- Headline: <1 short sentence summarizing the idea>.\n")
	sb.WriteString("  Details:\n")
	sb.WriteString("  • <Metric Label>: <Value>\n")
	sb.WriteString("  • <Metric Label>: <Value>\n")
	sb.WriteString("  • <Optional 3rd bullet if needed>\n\n")
	sb.WriteString("STYLE RULES:\n")
	sb.WriteString("1) Each bullet must express ONE big idea only (growth, profitability, segments, balance sheet, risks, etc).\n")
	sb.WriteString("2) Use VERY simple English — assume the reader is new to finance.\n")
	sb.WriteString("3) Use the currency symbols from the report correctly.\n")
	sb.WriteString("4) Group related numbers together (e.g., all revenue numbers in one bullet).\n")
	sb.WriteString("5) Never dump too many numbers — 2 to 3 metrics per bullet maximum.\n")
	sb.WriteString("6) No extra text, no intros, no outros — ONLY the 5 bullets.\n")
	sb.WriteString("7) Explain context in the headline, numbers in the details.\n\n")
	sb.WriteString("Your goal: Make the summary feel like a clean, human-written research note intro.\n\n")
	sb.WriteString("TEXT TO SUMMARIZE:\n")
	sb.WriteString(text)

	return sb.String()
}

// buildEntityPrompt creates the company/competitor identification prompt.
func buildEntityPrompt(text string) string {
	var sb strings.Builder

	sb.WriteString("Step 1: Identify the main company discussed in the following text.\n")
	sb.WriteString("Step 2: Based on your general knowledge, identify 3 major publicly traded competitors for that company.\n")
	sb.WriteString("Step 3: Return ONLY a raw JSON object with exactly two keys: 'main_ticker' (string) and 'competitors' (list of strings).\n")
	sb.WriteString("Example: { \"main_ticker\": \"MSFT\", \"competitors\": [\"GOOG\", \"AMZN\"] }\n\n")
	sb.WriteString("TEXT TO ANALYZE:\n")
	sb.WriteString(text)

	return sb.String()
}

// buildRevenueTablePrompt creates the revenue-extraction prompt.
func buildRevenueTablePrompt(text string) string {
	var sb strings.Builder

	sb.WriteString("Extract the revenue figures from the text below. ")
	sb.WriteString("If quarterly data is available return quarterly keys like ")
	sb.WriteString("{\"Q1 FY25\": 62613, \"Q2 FY25\": 64000}. ")
	sb.WriteString("If quarterly is NOT available but annual data is present, ")
	sb.WriteString("return annual keys like {\"FY21\": 45000, \"FY22\": 52000}. ")
	sb.WriteString("Return ONLY a raw JSON object and nothing else (no words, no explanation).\n\n")
	sb.WriteString("TEXT TO ANALYZE:\n")
	sb.WriteString(text)

	return sb.String()
}

// buildAnswerPrompt creates the grounded Q&A prompt.
func buildAnswerPrompt(reportText, question string) string {
	return fmt.Sprintf(`You are a concise financial analyst. Answer ONLY from the REPORT TEXT below.

INSTRUCTIONS (must follow exactly):
1) FIRST LINE — give a one-sentence short answer (<= 30 words).
2) If the user needs more detail, include a small 'Details:' section with at most 4 bullet points (each bullet max 2 short sentences).
3) When numbers appear, show value + simple explanation.
4) If the question is about investing (safe? buy? sell? hold?), do NOT give investment advice. Instead reply:
"The report does not give investment advice, but here is what it says:" followed by facts.
5) If the information is NOT in the text, reply exactly: "The report does not mention this."
6) Use simple, beginner-friendly English. Keep everything short and clear.
7) Do NOT invent facts or add outside knowledge.

USER QUESTION:
%s

REPORT TEXT:
%s
`, question, reportText)
}
