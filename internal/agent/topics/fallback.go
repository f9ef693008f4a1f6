package topics

import (
	"math/rand"
	"strings"
	"time"
)

// fallbackTopics is the curated offline topic list. It spans multiple
// subject domains so fallback cycles don't produce monotonic content.
var fallbackTopics = []Candidate{
	{Title: "AI Revolution in Software Development", Description: "How AI is transforming coding and development workflows", Source: "Tech News", Category: "Technology"},
	{Title: "Quantum Computing Breakthroughs", Description: "Latest advances in quantum technology and applications", Source: "Science Today", Category: "Technology"},
	{Title: "Cybersecurity Trends and Emerging Threats", Description: "Emerging threats and security solutions", Source: "Security Weekly", Category: "Technology"},
	{Title: "Startup Funding Landscape Changes", Description: "New trends in venture capital and startup investments", Source: "Business Weekly", Category: "Business"},
	{Title: "Cryptocurrency Market Evolution", Description: "Latest developments in digital currency markets", Source: "Finance Today", Category: "Finance"},
	{Title: "Remote Work Revolution Continues", Description: "How remote work is reshaping business operations", Source: "Work Trends", Category: "Business"},
	{Title: "Medical AI Diagnostic Breakthroughs", Description: "Artificial intelligence revolutionizing healthcare diagnostics", Source: "Health Science", Category: "Health"},
	{Title: "Climate Change Solutions and Innovation", Description: "Innovative approaches to environmental challenges", Source: "Environmental News", Category: "Environment"},
	{Title: "Space Exploration Milestones", Description: "Recent achievements in space technology and exploration", Source: "Space Today", Category: "Science"},
	{Title: "Digital Entertainment Industry Trends", Description: "How streaming and gaming are evolving", Source: "Entertainment Weekly", Category: "Entertainment"},
	{Title: "Social Media Platform Changes", Description: "Latest updates in the social media landscape", Source: "Digital Culture", Category: "Entertainment"},
	{Title: "Gaming Industry Innovation Wave", Description: "New technologies transforming gaming experiences", Source: "Gaming News", Category: "Entertainment"},
	{Title: "Online Learning Revolution", Description: "How digital education is transforming learning", Source: "Education Today", Category: "Education"},
	{Title: "Future of Work and Essential Skills", Description: "Essential skills for the modern workplace", Source: "Career Insights", Category: "Education"},
	{Title: "Wellness Technology Advances", Description: "How technology is improving personal health", Source: "Wellness Weekly", Category: "Health"},
	{Title: "Sustainable Living Practices", Description: "Practical approaches to environmental responsibility", Source: "Green Living", Category: "Environment"},
	{Title: "Travel Industry Digital Transformation", Description: "How travel is adapting to new global realities", Source: "Travel News", Category: "Business"},
	{Title: "Renewable Energy Market Growth", Description: "Solar, wind, and storage reshaping the energy sector", Source: "Energy Report", Category: "Environment"},
}

// fallbackCount bounds how many fallback topics one cycle sees.
const fallbackCount = 8

// FallbackTopics returns a shuffled slice of the curated topic list with
// fresh provenance ids. The top-level rand shuffle is internally locked,
// so concurrent cycles may call this freely.
func FallbackTopics() []Candidate {
	now := time.Now()
	out := make([]Candidate, len(fallbackTopics))
	copy(out, fallbackTopics)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if len(out) > fallbackCount {
		out = out[:fallbackCount]
	}
	for i := range out {
		out[i].PublishedAt = now
		out[i].UniqueID = DeriveUniqueID(out[i].Title, now)
	}
	return out
}

// categoryKeywords maps content keywords to coarse categories.
var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"Technology", []string{"technology", "ai", "software"}},
	{"Business", []string{"business", "finance", "economy"}},
	{"Health", []string{"health", "medical", "healthcare"}},
	{"Science", []string{"science", "research", "study"}},
	{"Entertainment", []string{"entertainment", "movie", "music"}},
	{"Sports", []string{"sports", "game", "team"}},
	{"Education", []string{"education", "learning", "school"}},
	{"Environment", []string{"environment", "climate", "green"}},
}

// Categorize assigns a coarse category based on keyword presence.
func Categorize(content string) string {
	lower := strings.ToLower(content)
	for _, entry := range categoryKeywords {
		for _, w := range entry.words {
			if strings.Contains(lower, w) {
				return entry.category
			}
		}
	}
	return "General"
}
