package auditoria_log

import (
	"sort"
	"strings"
)

const RedactedValue = "[REDACTED]"

// sensitiveFields é comparado com o nome normalizado (minúsculo, sem '_' e '-').
var sensitiveFields = map[string]bool{
	"password":     true,
	"passwordhash": true,
	"token":        true,
	"accesstoken":  true,
	"refreshtoken": true,
	"secret":       true,
	"clientsecret": true,
	"apikey":       true,
	"otp":          true,
	"otpcode":      true,
}

var sensitiveFragments = []string{"password", "secret", "token"}

// FieldChange é a unidade atômica da trilha de auditoria.
type FieldChange struct {
	FieldName   string     `json:"field_name"`
	FieldType   FieldType  `json:"field_type"`
	OldValue    *string    `json:"old_value"`
	NewValue    *string    `json:"new_value"`
	ChangeType  ChangeType `json:"change_type"`
	IsSensitive bool       `json:"is_sensitive"`
}

// Diff compara dois snapshots campo a campo. before nil indica criação e
// after nil indica exclusão. Campos iguais não aparecem no resultado, que é
// ordenado pelo nome do campo.
func Diff(before, after map[string]interface{}) []FieldChange {
	names := make(map[string]struct{}, len(before)+len(after))
	for k := range before {
		names[k] = struct{}{}
	}
	for k := range after {
		names[k] = struct{}{}
	}

	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var changes []FieldChange
	for _, field := range keys {
		oldRaw, inBefore := before[field]
		newRaw, inAfter := after[field]

		var change FieldChange
		switch {
		case !inBefore:
			change = FieldChange{ChangeType: ChangeAdded, NewValue: serializeValue(newRaw)}
		case !inAfter:
			change = FieldChange{ChangeType: ChangeRemoved, OldValue: serializeValue(oldRaw)}
		default:
			oldVal, newVal := serializeValue(oldRaw), serializeValue(newRaw)
			if equalValues(oldVal, newVal) {
				continue
			}
			change = FieldChange{ChangeType: ChangeModified, OldValue: oldVal, NewValue: newVal}
		}

		change.FieldName = field
		change.FieldType = changeType(oldRaw, newRaw)
		if IsSensitiveField(field) {
			change.IsSensitive = true
			change.OldValue = redact(change.OldValue)
			change.NewValue = redact(change.NewValue)
		}
		changes = append(changes, change)
	}

	return changes
}

// IsSensitiveField informa se o valor do campo nunca pode ser exibido.
func IsSensitiveField(field string) bool {
	normalized := strings.ToLower(field)
	normalized = strings.NewReplacer("_", "", "-", "").Replace(normalized)
	if sensitiveFields[normalized] {
		return true
	}
	for _, frag := range sensitiveFragments {
		if strings.Contains(normalized, frag) {
			return true
		}
	}
	return false
}

func equalValues(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func changeType(oldRaw, newRaw interface{}) FieldType {
	if newRaw != nil {
		return inferType(newRaw)
	}
	return inferType(oldRaw)
}

func redact(v *string) *string {
	if v == nil {
		return nil
	}
	marker := RedactedValue
	return &marker
}

// ToEntityChanges converte o diff nas linhas persistidas.
func ToEntityChanges(changes []FieldChange) []AuditEntityChange {
	if len(changes) == 0 {
		return nil
	}
	rows := make([]AuditEntityChange, len(changes))
	for i, c := range changes {
		rows[i] = AuditEntityChange{
			FieldName:   c.FieldName,
			FieldType:   c.FieldType,
			OldValue:    c.OldValue,
			NewValue:    c.NewValue,
			ChangeType:  c.ChangeType,
			IsSensitive: c.IsSensitive,
		}
	}
	return rows
}
