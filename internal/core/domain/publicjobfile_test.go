package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestProjectJobFileCarriesOnlyPublicFields(t *testing.T) {
	source := JobFile{
		ID:       "jobfile-1",
		UserID:   "user-secret",
		JobTitle: "Keynote interpreting",
		Status:   JobFileUpcoming,
		ClientID: "client-secret",
		PrepMaterials: PrepMaterials{
			PrivateNotes: "secret rate negotiation",
			SharedNotes:  "Meet at the speaker entrance",
			Attachments:  []Attachment{{Name: "contract.pdf", URL: "https://files/secret"}},
		},
	}

	public := ProjectJobFile(source)

	if public.JobTitle != "Keynote interpreting" {
		t.Fatalf("expected jobTitle to carry over, got %q", public.JobTitle)
	}
	if public.Status != JobFileUpcoming {
		t.Fatalf("expected status to carry over, got %q", public.Status)
	}
	if public.SharedNotes != "Meet at the speaker entrance" {
		t.Fatalf("expected sharedNotes to carry over, got %q", public.SharedNotes)
	}

	raw, err := json.Marshal(public)
	if err != nil {
		t.Fatalf("marshal projection: %v", err)
	}
	serialized := string(raw)
	for _, leaked := range []string{"secret", "privateNotes", "userId", "clientId", "attachments"} {
		if strings.Contains(serialized, leaked) {
			t.Fatalf("projection leaked %q: %s", leaked, serialized)
		}
	}
}

func TestProjectJobFileIsACopyNotAReference(t *testing.T) {
	source := JobFile{JobTitle: "Original title", PrepMaterials: PrepMaterials{SharedNotes: "v1"}}
	public := ProjectJobFile(source)

	source.JobTitle = "Edited after sharing"
	source.PrepMaterials.SharedNotes = "v2"

	if public.JobTitle != "Original title" || public.SharedNotes != "v1" {
		t.Fatalf("projection must freeze values at share time, got %+v", public)
	}
}
