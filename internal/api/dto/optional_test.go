package dto

import (
	"encoding/json"
	"testing"
)

func TestStudentTicketUpdateRequestDistinguishesNullFromAbsent(t *testing.T) {
	var req StudentTicketUpdateRequest
	body := `{"tried": null, "title": "New title", "assigned": true}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	changes := req.Changes()

	if !changes.Tried.Set || !changes.Tried.Null {
		t.Errorf("tried = %+v, want set null", changes.Tried)
	}
	if !changes.Title.Set || changes.Title.Null || changes.Title.Value != "New title" {
		t.Errorf("title = %+v", changes.Title)
	}
	if changes.Category.Set || changes.AdditionalInfo.Set || changes.Completed.Set {
		t.Errorf("absent members marked set: %+v", changes)
	}
	if changes.Assigned.Set {
		t.Error("students cannot send assigned through this request")
	}
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var req HelperTicketUpdateRequest
	if err := json.Unmarshal([]byte(`{"completed": "yes"}`), &req); err == nil {
		t.Fatal("expected type error for string completed")
	}
	if err := json.Unmarshal([]byte(`{"assigned_to": 3}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p := req.AssignedTo.Ptr(); p == nil || *p != 3 {
		t.Fatalf("assigned_to = %v", p)
	}
}
