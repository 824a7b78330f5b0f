// ABOUTME: Input validation for sizing requests arriving from outside the process
// ABOUTME: Rejects malformed revision names and non-finite tier values before sizing

package services

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

// revisionNamePattern matches revision identifiers (lowercase, digits, hyphens, underscores)
var revisionNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,31}$`)

// sanitizeForLog removes control characters from strings to prevent log injection
// when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1 // Remove control characters
		}
		return r
	}, s)
}

// ValidateRevisionName checks the shape of a revision name. Empty selects the default.
func ValidateRevisionName(name string) error {
	if name == "" {
		return nil
	}
	if !revisionNamePattern.MatchString(name) {
		return fmt.Errorf("%w: invalid revision name format: %s", models.ErrInvalidInput, sanitizeForLog(name))
	}
	return nil
}

// ValidateSizingRequest rejects values that cannot name a tier at all. Uncalibrated
// but finite tiers pass; the engine resolves them by fallback and nearest match.
func ValidateSizingRequest(req models.SizingRequest) error {
	if err := ValidateRevisionName(req.Revision); err != nil {
		return err
	}
	if math.IsNaN(req.OxygenPurityPercent) || math.IsInf(req.OxygenPurityPercent, 0) {
		return fmt.Errorf("%w: oxygen purity must be a finite percentage", models.ErrInvalidInput)
	}
	if math.IsNaN(req.FeedPressureBar) || math.IsInf(req.FeedPressureBar, 0) {
		return fmt.Errorf("%w: feed pressure must be a finite number of bar", models.ErrInvalidInput)
	}
	return nil
}
