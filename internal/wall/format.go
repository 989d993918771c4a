package wall

import (
	"math"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders a whole-dollar amount with en-US digit grouping,
// e.g. 1000000 -> "$1,000,000". The system has no concept of cents.
func FormatUSD(amount int) string {
	return usdPrinter.Sprintf("$%d", amount)
}

// FormatPercent renders progress toward the goal. Anything strictly
// between 0 and 1 percent displays as "<1%" rather than rounding to
// zero; everything else rounds to the nearest whole percent.
func FormatPercent(p float64) string {
	if p > 0 && p < 1 {
		return "<1%"
	}
	return usdPrinter.Sprintf("%d%%", int(math.Round(p)))
}

// barWidth is the proportional width for the progress bar. A raised
// total that is nonzero but under 1% still gets a visible sliver.
func barWidth(p float64) float64 {
	if p > 0 && p < 1 {
		return 1
	}
	return p
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format("Jan 02, 2006")
}

// avatarInitials takes the first letters of the first two words of the
// name, uppercased. "D" when the name yields nothing.
func avatarInitials(name string) string {
	var b strings.Builder
	words := strings.Fields(name)
	if len(words) > 2 {
		words = words[:2]
	}
	for _, w := range words {
		for _, r := range w {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	if b.Len() == 0 {
		return "D"
	}
	return b.String()
}

// avatarHue maps a name onto a stable hue in 20..339, skipping the pure
// reds near 0 for readability against the card background.
func avatarHue(name string) int {
	var h uint32
	for _, r := range name {
		h = h*31 + uint32(r)
	}
	return 20 + int(h%320)
}
