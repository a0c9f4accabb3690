package gemini

import (
	"fmt"
	"strings"
)

const maxReviewHighlights = 5

const reportInstructions = `Generate a report with these sections:

1. EXECUTIVE SUMMARY
Recommend the best value option with brief reasoning (2-3 sentences).

2. COMPARISON TABLE
Create a clean HTML table comparing price and key specifications side-by-side.

3. REVIEW ANALYSIS
For each product, summarize consumer sentiment based on the reviews provided. If no reviews were found for a product, note that user feedback was unavailable.

4. PROS AND CONS
List pros and cons for each product based on specifications and reviews (if available).

5. FINAL RECOMMENDATION
Provide a detailed recommendation with reasoning based on value, features, and user feedback.

IMPORTANT: Format the entire output as clean, semantic HTML suitable for display. Use proper HTML tags (h2, h3, p, table, ul, li, etc.). Do not use markdown. Make it visually clear and well-structured.`

// BuildPrompt 根据商品列表生成对比报告提示词
func BuildPrompt(products []ProductInput) string {
	blocks := make([]string, 0, len(products))
	for i, product := range products {
		blocks = append(blocks, productBlock(i+1, product))
	}

	var b strings.Builder
	b.WriteString("You are a product comparison expert. Generate a detailed comparison report for the following products.\n\n")
	b.WriteString("PRODUCTS:\n")
	b.WriteString(strings.Join(blocks, "\n\n"))
	b.WriteString("\n\n")
	b.WriteString(reportInstructions)
	return b.String()
}

func productBlock(index int, product ProductInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product %d:\n", index)
	fmt.Fprintf(&b, "- Name: %s\n", product.Name)
	fmt.Fprintf(&b, "- Price: %s\n", product.Price)
	fmt.Fprintf(&b, "- Brand: %s\n", orDefault(product.Brand, "Unknown"))
	fmt.Fprintf(&b, "- Specifications: %s, %s\n", orDefault(product.Dimensions, "N/A"), orDefault(product.Color, "N/A"))
	fmt.Fprintf(&b, "- Description: %s\n", orDefault(product.Description, "No description available"))

	if len(product.Reviews) == 0 {
		b.WriteString("- Reviews: No reviews found")
		return b.String()
	}

	fmt.Fprintf(&b, "- Reviews: %d reviews found from various sources\n", len(product.Reviews))
	b.WriteString("\nReview highlights:")
	for i, review := range product.Reviews {
		if i == maxReviewHighlights {
			break
		}
		b.WriteString("\n  • ")
		b.WriteString(reviewHighlight(review))
	}
	return b.String()
}

func reviewHighlight(review ReviewInput) string {
	if review.Title != "" {
		return review.Title
	}
	runes := []rune(review.Snippet)
	if len(runes) > 100 {
		runes = runes[:100]
	}
	return string(runes)
}

func orDefault(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}
