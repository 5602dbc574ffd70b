package gemini

import (
	"fmt"
	"strings"

	"github.com/LoriCiv/ten99/internal/core/domain"
)

func buildPrefillPrompt(text string, clients, contacts []domain.RosterEntry, year int) string {
	const maxSnippet = 8000
	snippet := text
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet]
	}

	return fmt.Sprintf(`You extract appointment details from pasted emails and messages.
Return a JSON object with keys:
subject, date (YYYY-MM-DD), time (HH:MM 24-hour), endTime (HH:MM 24-hour),
durationInMinutes (integer), notes, jobType, address, virtualLink, clientId, contactId.
Leave any key you cannot determine from the text empty.
If the text names a year, use it; otherwise assume the year is %d.
Match clientId and contactId only against the rosters below. Do not guess IDs;
if no roster entry matches, leave the field empty.

Known clients:
%s
Known contacts:
%s
Message:
%s`, year, formatRoster(clients), formatRoster(contacts), snippet)
}

func formatRoster(entries []domain.RosterEntry) string {
	if len(entries) == 0 {
		return "(none)\n"
	}
	var b strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&b, "- id=%s name=%s\n", entry.ID, entry.Name)
	}
	return b.String()
}
