package calendar

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestValidateEvents(t *testing.T) {
	tests := map[string]struct {
		events []Event
		expErr string
	}{
		"empty":        {events: nil},
		"unique":       {events: []Event{e1, e2, e3}},
		"duplicate id": {events: []Event{e1, e2, {Id: "e1", Title: "copy"}}, expErr: "duplicate event id \"e1\""},
		"missing id":   {events: []Event{e1, {Title: "nameless"}}, expErr: "event id is required"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidateEvents(tt.events)
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestAreaModel_Validate(t *testing.T) {
	err := AreaModel{Events: []Event{e1}}.Validate()
	testutil.AssertErrorContains(t, err, "id is required")

	err = AreaModel{Id: "A1", Events: []Event{e1}}.Validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
