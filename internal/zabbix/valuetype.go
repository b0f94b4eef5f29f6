package zabbix

import "github.com/gosnmp/gosnmp"

// ValueType is the Zabbix item value type code.
type ValueType string

const (
	ValueTypeFloat    ValueType = "0"
	ValueTypeChar     ValueType = "1"
	ValueTypeLog      ValueType = "2"
	ValueTypeUnsigned ValueType = "3"
	ValueTypeText     ValueType = "4"
)

func (v ValueType) String() string {
	switch v {
	case ValueTypeFloat:
		return "float"
	case ValueTypeChar:
		return "char"
	case ValueTypeLog:
		return "log"
	case ValueTypeUnsigned:
		return "unsigned"
	case ValueTypeText:
		return "text"
	default:
		return "type-" + string(v)
	}
}

// SyntaxBER maps a MIB SYNTAX token to its SNMP wire type. The match is
// exact and case sensitive; only the base types the converter knows are
// recognized.
func SyntaxBER(syntax string) (gosnmp.Asn1BER, bool) {
	switch syntax {
	case "INTEGER", "Integer32":
		return gosnmp.Integer, true
	case "Counter32":
		return gosnmp.Counter32, true
	case "Counter64":
		return gosnmp.Counter64, true
	case "Gauge32":
		return gosnmp.Gauge32, true
	case "TimeTicks":
		return gosnmp.TimeTicks, true
	case "OCTETSTR", "DisplayString":
		return gosnmp.OctetString, true
	case "OBJECTIDENTIFIER":
		return gosnmp.ObjectIdentifier, true
	default:
		return gosnmp.UnknownType, false
	}
}

// ClassifySyntax returns the item value type for a MIB SYNTAX token.
// Unknown and empty syntaxes are stored as text.
func ClassifySyntax(syntax string) ValueType {
	ber, ok := SyntaxBER(syntax)
	if !ok {
		return ValueTypeText
	}
	return ClassifyBER(ber)
}

// ClassifyBER returns the item value type for an SNMP wire type.
func ClassifyBER(ber gosnmp.Asn1BER) ValueType {
	switch ber {
	case gosnmp.Integer, gosnmp.Counter32, gosnmp.Counter64, gosnmp.Gauge32, gosnmp.TimeTicks:
		return ValueTypeUnsigned
	default:
		return ValueTypeText
	}
}
