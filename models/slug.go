package models

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Latin letters with no NFD decomposition.
var letterFolds = strings.NewReplacer(
	"ø", "o", "æ", "ae", "œ", "oe", "ß", "ss", "đ", "d",
	"ð", "d", "ł", "l", "þ", "th", "ı", "i", "ħ", "h",
)

// Slugify lowercases title, folds accents, and joins the remaining runs of
// letters and digits with single hyphens. Scripts with no Latin folding are
// dropped, so the result may be empty. Slugify(Slugify(t)) == Slugify(t).
func Slugify(title string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range letterFolds.Replace(strings.ToLower(folded)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			pendingHyphen = true
		}
	}
	return b.String()
}

// IsSlug reports whether s is already in the shape Slugify produces.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// checkSlug validates a normalized slug. An empty slug means none was typed and
// the title had nothing to derive one from.
func checkSlug(slug string) error {
	if slug == "" {
		return errs.NewInvalidFieldError("title", "has no letters or digits a slug can be built from, enter a slug by hand")
	}
	if !IsSlug(slug) {
		return errs.NewInvalidFieldError("slug", "use lowercase letters, digits and single hyphens")
	}
	return nil
}
