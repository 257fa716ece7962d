package measure

import (
	"encoding/json"
	"strconv"
	"strings"
)

// LogType is the discriminator carried by every serialized measurement.
const LogType = "Performance"

// serialize renders the measurement as one flat JSON object. Field order is
// fixed: OperationName, OperationId, LogType, ParentOperationId (non-roots
// only), numeric facts as value/unit pairs in insertion order, string facts
// in first-write order, then bool facts in first-write order.
//
// Two accepted quirks are preserved deliberately: repeated numeric-fact names
// produce repeated keys, and a key present both as a string fact and as a
// bool fact produces two same-named keys. Most parsers take the last value.
func (m *measurement) serialize() string {
	var b strings.Builder

	b.WriteByte('{')
	writeStringField(&b, "OperationName", m.operationName)
	b.WriteByte(',')
	writeStringField(&b, "OperationId", m.operationID)
	b.WriteByte(',')
	writeStringField(&b, "LogType", LogType)

	if m.parent != nil {
		b.WriteByte(',')
		writeStringField(&b, "ParentOperationId", m.parent.operationID)
	}

	for _, f := range m.numericFacts {
		b.WriteByte(',')
		b.WriteString(quote(f.name))
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(f.value, 10))
		b.WriteByte(',')
		writeStringField(&b, f.name+"_unit", f.unit)
	}

	for _, k := range m.stringKeys {
		b.WriteByte(',')
		writeStringField(&b, k, m.stringFacts[k])
	}

	for _, k := range m.boolKeys {
		b.WriteByte(',')
		b.WriteString(quote(k))
		b.WriteByte(':')
		b.WriteString(strconv.FormatBool(m.boolFacts[k]))
	}

	b.WriteByte('}')

	return b.String()
}

func writeStringField(b *strings.Builder, name, value string) {
	b.WriteString(quote(name))
	b.WriteByte(':')
	b.WriteString(quote(value))
}

func quote(s string) string {
	escaped, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}

	return string(escaped)
}
