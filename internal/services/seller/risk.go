package seller

import (
	"time"

	"github.com/stagepass/ticketing-backend/internal/models"
	"github.com/stagepass/ticketing-backend/utils"
)

// scoreApplication runs the rule-based risk screen over a fresh seller
// application. The result is advisory: it is stored on the application and
// shown in the admin review queue, but only an admin decision moves the
// state machine.
func scoreApplication(user *models.User, app *models.SellerApplication, now time.Time) (int, []string) {
	score := 0
	var flags []string

	if utils.IsDisposableEmail(app.ContactEmail) {
		score += 25
		flags = append(flags, "Disposable contact email domain")
	}

	accountAge := now.Sub(user.CreatedAt)
	if accountAge < time.Hour {
		score += 30
		flags = append(flags, "Account created < 1 hour ago")
	} else if accountAge < 24*time.Hour {
		score += 15
		flags = append(flags, "Account created < 24 hours ago")
	}

	if len(app.BusinessName) < 4 {
		score += 10
		flags = append(flags, "Unusually short business name")
	}

	// Instant apply after signup smells like a bot.
	if app.AppliedAt.Sub(user.CreatedAt) < 10*time.Minute {
		score += 20
		flags = append(flags, "Applied within 10 minutes of signup")
	}

	return score, flags
}
