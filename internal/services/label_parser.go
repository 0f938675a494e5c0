package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wastenobite/backend/internal/models"
)

// LabelParser turns OCR text from a product label into a purchase draft.
// The result is a suggestion for the operator to confirm, never a direct
// inventory write.
type LabelParser struct {
	expiryPatterns   []*regexp.Regexp
	quantityPatterns []*regexp.Regexp
	excludePatterns  []*regexp.Regexp
}

// NewLabelParser creates a new label parser
func NewLabelParser() *LabelParser {
	return &LabelParser{
		expiryPatterns: []*regexp.Regexp{
			// EXP 12/31/2026, EXPIRY: 2026-12-31, USE BY 31-12-2026, BEST BEFORE 12/2026
			regexp.MustCompile(`(?i)(?:EXP(?:IRY|IRES)?|USE\s*BY|BEST\s*(?:BEFORE|BY)|BB)\s*:?\s*(\d{4}[/-]\d{1,2}[/-]\d{1,2})`),
			regexp.MustCompile(`(?i)(?:EXP(?:IRY|IRES)?|USE\s*BY|BEST\s*(?:BEFORE|BY)|BB)\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
			// Bare ISO date on its own line
			regexp.MustCompile(`^\s*(\d{4}-\d{2}-\d{2})\s*$`),
		},
		quantityPatterns: []*regexp.Regexp{
			// QTY 12, QUANTITY: 6, 12 PCS, x12
			regexp.MustCompile(`(?i)(?:QTY|QUANTITY)\s*:?\s*(\d+(?:\.\d+)?)`),
			regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:PCS?|PIECES?|UNITS?|CT|COUNT)\b`),
			regexp.MustCompile(`(?i)[xX]\s*(\d+)\b`),
			// NET WT 500 g / 2.5 kg treated as quantity in the label's unit
			regexp.MustCompile(`(?i)NET\s*(?:WT|WEIGHT)\s*:?\s*(\d+(?:\.\d+)?)\s*(?:g|kg|oz|lb)?`),
		},
		excludePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*(?:EXP|USE\s*BY|BEST|BB|QTY|QUANTITY|NET\s*W|LOT|BATCH|BARCODE|MFG|MFD|PACKED|STORE|KEEP|REFRIGERAT)`),
			regexp.MustCompile(`^\s*[-=*|]+\s*$`),
			regexp.MustCompile(`^\s*\d+\s*$`),
		},
	}
}

// Parse extracts a purchase draft from OCR label text.
func (p *LabelParser) Parse(ocrText string) (*models.ScannedLabel, error) {
	lines := strings.Split(ocrText, "\n")

	label := &models.ScannedLabel{
		Quantity: 1,
		RawText:  ocrText,
	}

	fieldsFound := 0
	for _, raw := range lines {
		line := p.cleanLine(raw)
		if line == "" {
			continue
		}

		if label.ExpiryDate == "" {
			if date := p.matchExpiry(line); date != "" {
				label.ExpiryDate = date
				fieldsFound++
			}
		}

		if qty, ok := p.matchQuantity(line); ok && label.Quantity == 1 {
			label.Quantity = qty
			fieldsFound++
		}

		// First plausible free-text line is the product name
		if label.ItemName == "" && !p.shouldExclude(line) {
			label.ItemName = p.cleanItemName(line)
			if label.ItemName != "" {
				fieldsFound++
			}
		}
	}

	if label.ItemName == "" && label.ExpiryDate == "" {
		return nil, fmt.Errorf("no recognizable label fields in OCR text")
	}

	// Rough confidence: share of the three fields we managed to fill
	label.Confidence = fieldsFound * 100 / 3

	return label, nil
}

func (p *LabelParser) matchExpiry(line string) string {
	for _, pattern := range p.expiryPatterns {
		matches := pattern.FindStringSubmatch(line)
		if len(matches) >= 2 {
			return normalizeDate(matches[1])
		}
	}
	return ""
}

func (p *LabelParser) matchQuantity(line string) (float64, bool) {
	for _, pattern := range p.quantityPatterns {
		matches := pattern.FindStringSubmatch(line)
		if len(matches) >= 2 {
			qty, err := strconv.ParseFloat(matches[1], 64)
			if err == nil && qty > 0 && qty < 100000 {
				return qty, true
			}
		}
	}
	return 0, false
}

// shouldExclude checks if a line should be excluded from name extraction
func (p *LabelParser) shouldExclude(line string) bool {
	for _, pattern := range p.excludePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// cleanLine cleans up a line for parsing
func (p *LabelParser) cleanLine(line string) string {
	spaceRe := regexp.MustCompile(`\s+`)
	line = spaceRe.ReplaceAllString(line, " ")

	// Remove common OCR artifacts
	line = strings.ReplaceAll(line, "|", "")
	line = strings.ReplaceAll(line, "\\", "")

	return strings.TrimSpace(line)
}

// cleanItemName cleans up a product name
func (p *LabelParser) cleanItemName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimRight(name, ".,;:-_")
	for _, prefix := range []string{"@", "#", "*"} {
		name = strings.TrimPrefix(name, prefix)
	}

	// Names shorter than two letters are OCR noise
	if len([]rune(name)) < 2 {
		return ""
	}

	return strings.TrimSpace(name)
}

// normalizeDate rewrites matched dates into YYYY-MM-DD where possible so the
// purchase form can prefill the expiry field.
func normalizeDate(raw string) string {
	raw = strings.ReplaceAll(raw, "/", "-")

	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return raw
	}

	// Already YYYY-MM-DD
	if len(parts[0]) == 4 {
		return fmt.Sprintf("%s-%s-%s", parts[0], pad2(parts[1]), pad2(parts[2]))
	}

	// MM-DD-YYYY or MM-DD-YY
	year := parts[2]
	if len(year) == 2 {
		year = "20" + year
	}
	return fmt.Sprintf("%s-%s-%s", year, pad2(parts[0]), pad2(parts[1]))
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
