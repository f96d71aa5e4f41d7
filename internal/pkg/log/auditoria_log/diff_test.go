package auditoria_log

import (
	"testing"
)

func TestDiffIdenticalSnapshotsIsEmpty(t *testing.T) {
	snap := map[string]interface{}{
		"numero_caso": "CASE-1",
		"puntuacion":  float64(9),
		"activo":      true,
		"tags":        []interface{}{"a", "b"},
		"nada":        nil,
	}

	if got := Diff(snap, snap); len(got) != 0 {
		t.Fatalf("Diff(X, X) = %+v, want empty", got)
	}
}

func TestDiffAddedAndRemoved(t *testing.T) {
	tests := []struct {
		name   string
		before map[string]interface{}
		after  map[string]interface{}
		want   ChangeType
	}{
		{
			name:   "added",
			before: map[string]interface{}{"a": float64(1)},
			after:  map[string]interface{}{"a": float64(1), "b": float64(2)},
			want:   ChangeAdded,
		},
		{
			name:   "removed",
			before: map[string]interface{}{"a": float64(1), "b": float64(2)},
			after:  map[string]interface{}{"a": float64(1)},
			want:   ChangeRemoved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.before, tt.after)
			if len(got) != 1 {
				t.Fatalf("len(Diff) = %d, want 1: %+v", len(got), got)
			}
			if got[0].FieldName != "b" || got[0].ChangeType != tt.want {
				t.Errorf("Diff = %+v, want b %s", got[0], tt.want)
			}
			if got[0].FieldType != FieldNumber {
				t.Errorf("FieldType = %s, want number", got[0].FieldType)
			}
		})
	}
}

func TestDiffCreateAndDelete(t *testing.T) {
	entity := map[string]interface{}{"titulo": "x", "version": float64(1)}

	created := Diff(nil, entity)
	if len(created) != 2 {
		t.Fatalf("create produced %d changes, want 2", len(created))
	}
	for _, c := range created {
		if c.ChangeType != ChangeAdded || c.OldValue != nil || c.NewValue == nil {
			t.Errorf("create change = %+v", c)
		}
	}

	deleted := Diff(entity, nil)
	if len(deleted) != 2 {
		t.Fatalf("delete produced %d changes, want 2", len(deleted))
	}
	for _, c := range deleted {
		if c.ChangeType != ChangeRemoved || c.NewValue != nil || c.OldValue == nil {
			t.Errorf("delete change = %+v", c)
		}
	}
}

func TestDiffModifiedValues(t *testing.T) {
	before := map[string]interface{}{
		"estado":     "nuevo",
		"puntuacion": float64(7),
		"published":  false,
		"meta":       map[string]interface{}{"k": "v"},
	}
	after := map[string]interface{}{
		"estado":     "resuelto",
		"puntuacion": float64(12),
		"published":  true,
		"meta":       map[string]interface{}{"k": "w"},
	}

	got := Diff(before, after)
	if len(got) != 4 {
		t.Fatalf("len(Diff) = %d, want 4", len(got))
	}

	want := map[string]struct {
		typ      FieldType
		old, new string
	}{
		"estado":     {FieldString, "nuevo", "resuelto"},
		"meta":       {FieldObject, `{"k":"v"}`, `{"k":"w"}`},
		"published":  {FieldBoolean, "false", "true"},
		"puntuacion": {FieldNumber, "7", "12"},
	}

	for i, c := range got {
		if i > 0 && got[i-1].FieldName > c.FieldName {
			t.Errorf("changes not sorted: %s before %s", got[i-1].FieldName, c.FieldName)
		}
		w, ok := want[c.FieldName]
		if !ok {
			t.Fatalf("unexpected field %s", c.FieldName)
		}
		if c.ChangeType != ChangeModified {
			t.Errorf("%s: ChangeType = %s", c.FieldName, c.ChangeType)
		}
		if c.FieldType != w.typ {
			t.Errorf("%s: FieldType = %s, want %s", c.FieldName, c.FieldType, w.typ)
		}
		if *c.OldValue != w.old || *c.NewValue != w.new {
			t.Errorf("%s: old/new = %q/%q, want %q/%q", c.FieldName, *c.OldValue, *c.NewValue, w.old, w.new)
		}
	}
}

func TestDiffNullToValue(t *testing.T) {
	got := Diff(
		map[string]interface{}{"case_uuid": nil},
		map[string]interface{}{"case_uuid": "6a4b"},
	)
	if len(got) != 1 || got[0].ChangeType != ChangeModified {
		t.Fatalf("Diff = %+v", got)
	}
	if got[0].OldValue != nil || *got[0].NewValue != "6a4b" {
		t.Errorf("old/new = %v/%v", got[0].OldValue, got[0].NewValue)
	}
}

func TestDiffDateType(t *testing.T) {
	got := Diff(
		map[string]interface{}{"fecha": "2024-01-02T00:00:00Z"},
		map[string]interface{}{"fecha": "2024-02-03T10:00:00Z"},
	)
	if len(got) != 1 || got[0].FieldType != FieldDate {
		t.Fatalf("Diff = %+v, want one date change", got)
	}
}

func TestDiffRedactsSensitiveFields(t *testing.T) {
	before := map[string]interface{}{"password_hash": "$argon2id$old", "apiKey": "k1", "name": "a"}
	after := map[string]interface{}{"password_hash": "$argon2id$new", "apiKey": "k2", "name": "a", "refresh-token": "t"}

	got := Diff(before, after)
	if len(got) != 3 {
		t.Fatalf("len(Diff) = %d, want 3: %+v", len(got), got)
	}
	for _, c := range got {
		if !c.IsSensitive {
			t.Errorf("%s should be sensitive", c.FieldName)
		}
		for _, v := range []*string{c.OldValue, c.NewValue} {
			if v != nil && *v != RedactedValue {
				t.Errorf("%s exposes raw value %q", c.FieldName, *v)
			}
		}
	}
}

func TestDiffDetectsChangeOnSensitiveFieldWithRedactedLookalike(t *testing.T) {
	got := Diff(
		map[string]interface{}{"secret": RedactedValue},
		map[string]interface{}{"secret": "real"},
	)
	if len(got) != 1 {
		t.Fatalf("change hidden by redaction: %+v", got)
	}
}

func TestIsSensitiveField(t *testing.T) {
	tests := map[string]bool{
		"password":      true,
		"PASSWORD":      true,
		"otp_code":      true,
		"client-secret": true,
		"x_token_raw":   true,
		"nombre":        false,
		"email":         false,
		"observaciones": false,
	}
	for field, want := range tests {
		if got := IsSensitiveField(field); got != want {
			t.Errorf("IsSensitiveField(%q) = %v, want %v", field, got, want)
		}
	}
}

func TestSnapshot(t *testing.T) {
	type entity struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}

	if Snapshot(nil) != nil {
		t.Error("Snapshot(nil) should be nil")
	}
	var missing *entity
	if Snapshot(missing) != nil {
		t.Error("Snapshot of nil pointer should be nil")
	}

	snap := Snapshot(entity{Name: "a", Score: 3})
	if snap["name"] != "a" || snap["score"] != float64(3) {
		t.Errorf("Snapshot = %v", snap)
	}
	if Snapshot([]int{1, 2}) != nil {
		t.Error("non-object entities should not produce a snapshot")
	}
}

func TestToEntityChanges(t *testing.T) {
	if ToEntityChanges(nil) != nil {
		t.Error("empty diff should produce no rows")
	}
	rows := ToEntityChanges(Diff(nil, map[string]interface{}{"a": "x"}))
	if len(rows) != 1 || rows[0].FieldName != "a" || rows[0].ChangeType != ChangeAdded {
		t.Errorf("rows = %+v", rows)
	}
}
