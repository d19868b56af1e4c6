package ticketControllers

import (
	"strings"
	"time"

	"github.com/nimbusmart/commerce-api/models"
)

// Advisory rule helpers. These are pure and stateless; the create and
// update paths do not call them. They exist for support tooling and
// keep the thresholds in one place.

var urgentKeywords = []string{"urgent", "immediately", "asap", "fraud", "unauthorized", "charged twice"}

var highKeywords = []string{"refund", "broken", "damaged", "missing", "not delivered", "wrong item"}

// InferPriority scans subject and body for keywords and suggests a
// priority. Unknown text defaults to MEDIUM.
func InferPriority(subject, body string) models.TicketPriority {
	text := strings.ToLower(subject + " " + body)
	for _, kw := range urgentKeywords {
		if strings.Contains(text, kw) {
			return models.TicketPriorityUrgent
		}
	}
	for _, kw := range highKeywords {
		if strings.Contains(text, kw) {
			return models.TicketPriorityHigh
		}
	}
	return models.TicketPriorityMedium
}

const (
	escalationAge       = 48 * time.Hour
	escalationUrgentAge = 4 * time.Hour
	escalationMessages  = 5
)

// EscalationEligible reports whether a ticket qualifies for escalation:
// already-escalated and closed tickets never do; URGENT tickets qualify
// after a short silence, others on age or a long back-and-forth.
func EscalationEligible(t *models.Ticket, now time.Time) bool {
	if t.Escalated || t.Status == models.TicketStatusResolved || t.Status == models.TicketStatusClosed {
		return false
	}

	silence := now.Sub(t.LastResponseAt)
	if t.Priority == models.TicketPriorityUrgent {
		return silence >= escalationUrgentAge
	}
	if t.Priority == models.TicketPriorityHigh && silence >= escalationAge/2 {
		return true
	}
	return silence >= escalationAge || len(t.Messages) >= escalationMessages
}
