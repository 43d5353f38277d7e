package audit

import (
	"fmt"
	"reflect"
	"sort"
	"time"
)

// Mask replaces the value of every sensitive field in a persisted entry.
const Mask = "********"

// SensitiveFields are never written to the audit log in clear.
var SensitiveFields = []string{
	"password",
	"password_hash",
	"is_superuser",
	"is_staff",
	"groups",
	"user_permissions",
	"role",
}

// Snapshot is the flat field -> value view of one row.
type Snapshot map[string]any

// Auditable is implemented by every tracked entity. AuditSnapshot must list
// only the fields that should appear in the log.
type Auditable interface {
	AuditTable() string
	AuditKey() string
	AuditSnapshot() Snapshot
}

// Change is one entry of an update diff.
type Change struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Value normalizes v into a JSON scalar so snapshots compare by value.
// Dates without a clock are rendered as YYYY-MM-DD.
func Value(v any) any {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	v = rv.Interface()

	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return nil
		}
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.UTC().Format(time.RFC3339)
	case string, bool:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case float32:
		return float64(x)
	case float64:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func normalize(s Snapshot) Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = Value(v)
	}
	return out
}

// Diff returns the fields whose value differs between before and after.
func Diff(before, after Snapshot) map[string]Change {
	b, a := normalize(before), normalize(after)

	keys := make(map[string]struct{}, len(a))
	for k := range b {
		keys[k] = struct{}{}
	}
	for k := range a {
		keys[k] = struct{}{}
	}

	diff := make(map[string]Change)
	for k := range keys {
		if b[k] != a[k] {
			diff[k] = Change{Old: b[k], New: a[k]}
		}
	}
	return diff
}

// ActionForDiff is DELETE when the diff flips is_deleted to true, UPDATE otherwise.
func ActionForDiff(diff map[string]Change) string {
	if c, ok := diff["is_deleted"]; ok && c.New == true {
		return ActionDelete
	}
	return ActionUpdate
}

func isSensitive(field string) bool {
	for _, f := range SensitiveFields {
		if f == field {
			return true
		}
	}
	return false
}

// Sanitize masks sensitive fields in place and returns changes. It accepts both
// the flat shape {field: value} and the diff shape {field: {old, new}}.
func Sanitize(changes map[string]any) map[string]any {
	for field, v := range changes {
		if !isSensitive(field) {
			continue
		}
		switch x := v.(type) {
		case Change:
			changes[field] = Change{Old: Mask, New: Mask}
		case map[string]any:
			_, hasOld := x["old"]
			_, hasNew := x["new"]
			if hasOld || hasNew {
				changes[field] = map[string]any{"old": Mask, "new": Mask}
				continue
			}
			changes[field] = Mask
		default:
			changes[field] = Mask
		}
	}
	return changes
}

func snapshotChanges(s Snapshot) map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range normalize(s) {
		out[k] = v
	}
	return out
}

func diffChanges(d map[string]Change) map[string]any {
	out := make(map[string]any, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// ChangedFields lists the keys of a diff in sorted order, for log fields.
func ChangedFields(d map[string]Change) []string {
	out := make([]string, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
