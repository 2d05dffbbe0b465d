package comment

import (
	"encoding/json"
	"testing"
)

func TestOutcomeDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		success bool
		msg     string
	}{
		{"success", `{"success": true}`, true, ""},
		{"failure with msg", `{"success": false, "msg": "无权删除"}`, false, "无权删除"},
		{"failure without msg", `{"success": false}`, false, ""},
		{"missing success", `{}`, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o Outcome
			if err := json.Unmarshal([]byte(tt.body), &o); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if o.Success != tt.success {
				t.Errorf("success = %v, want %v", o.Success, tt.success)
			}
			if o.Msg != tt.msg {
				t.Errorf("msg = %q, want %q", o.Msg, tt.msg)
			}
		})
	}
}

func TestOutcomeMessage(t *testing.T) {
	o := &Outcome{Msg: "X"}
	if got := o.Message("Delete failed"); got != "X" {
		t.Errorf("message = %q, want %q", got, "X")
	}

	o = &Outcome{}
	if got := o.Message("Delete failed"); got != "Delete failed" {
		t.Errorf("message = %q, want fallback", got)
	}

	var nilOutcome *Outcome
	if got := nilOutcome.Message("Delete failed"); got != "Delete failed" {
		t.Errorf("nil message = %q, want fallback", got)
	}
}

func TestFromInt(t *testing.T) {
	if got := FromInt(42); got != "42" {
		t.Errorf("FromInt(42) = %q", got)
	}
}
