package zabbix

import (
	"regexp"
	"testing"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debashish-mukherjee/go-mib2zabbix/internal/mibtext"
)

var fixedNow = func() time.Time {
	return time.Date(2024, 3, 9, 23, 4, 5, 0, time.FixedZone("UTC+2", 2*60*60))
}

func TestBuildSingleObject(t *testing.T) {
	objects, _ := mibtext.Extract(`sysDescr OBJECT-TYPE SYNTAX DisplayString ACCESS read-only DESCRIPTION "A textual description" ::= { system 1 }`)

	doc := Build(objects, Options{
		TemplateName: "SNMPv2-MIB",
		SourceFile:   "/usr/share/snmp/mibs/SNMPv2-MIB.txt",
		Now:          fixedNow,
	})

	body := doc.ZabbixExport
	assert.Equal(t, "5.0", body.Version)
	assert.Equal(t, "2024-03-09T21:04:05Z", body.Date)
	assert.Equal(t, []Group{{Name: DefaultGroup}}, body.Groups)
	require.Len(t, body.Templates, 1)

	tmpl := doc.Template()
	require.NotNil(t, tmpl)
	assert.Equal(t, "Template SNMPv2-MIB", tmpl.Template)
	assert.Equal(t, "Template SNMPv2-MIB", tmpl.Name)
	assert.Equal(t, "Generated from MIB file: SNMPv2-MIB.txt", tmpl.Description)
	assert.Equal(t, body.Groups, tmpl.Groups)
	assert.Equal(t, []Application{{Name: "SNMPv2-MIB"}}, tmpl.Applications)
	assert.NotNil(t, tmpl.DiscoveryRules)
	assert.Empty(t, tmpl.DiscoveryRules)

	require.Len(t, tmpl.Items, 1)
	assert.Equal(t, Item{
		Name:          "sysDescr",
		Type:          "SNMP_AGENT",
		SNMPOID:       ".1.3.6.1.4.1.1",
		Key:           "snmp.sysdescr",
		Delay:         "5m",
		History:       "2w",
		Trends:        "365d",
		Status:        "0",
		ValueType:     ValueTypeText,
		Description:   "A textual description",
		Applications:  []Application{{Name: "SNMPv2-MIB"}},
		Preprocessing: []interface{}{},
		Tags:          []Tag{{Tag: "mib", Value: "SNMPv2-MIB"}},
	}, tmpl.Items[0])
}

func TestBuildWithoutObjects(t *testing.T) {
	doc := Build(nil, Options{TemplateName: "EMPTY", SourceFile: "empty.mib", Now: fixedNow})

	tmpl := doc.Template()
	require.NotNil(t, tmpl)
	assert.NotNil(t, tmpl.Items)
	assert.Empty(t, tmpl.Items)
	assert.Empty(t, tmpl.DiscoveryRules)
}

func TestBuildKeepsObjectOrder(t *testing.T) {
	objects := []mibtext.Object{
		{Name: "b", FullOID: ".1.3.6.1.4.1.2", Syntax: "Counter64"},
		{Name: "a", FullOID: ".1.3.6.1.4.1.1", Syntax: "Bits"},
		{Name: "b", FullOID: ".1.3.6.1.4.1.2", Syntax: "Counter64"},
	}

	doc := Build(objects, Options{TemplateName: "X", Groups: []string{"Group A", "Group B"}, Now: fixedNow})

	tmpl := doc.Template()
	require.Len(t, tmpl.Items, 3)
	assert.Equal(t, "b", tmpl.Items[0].Name)
	assert.Equal(t, "a", tmpl.Items[1].Name)
	assert.Equal(t, "b", tmpl.Items[2].Name)
	assert.Equal(t, ValueTypeUnsigned, tmpl.Items[0].ValueType)
	assert.Equal(t, ValueTypeText, tmpl.Items[1].ValueType)
	assert.Equal(t, []Group{{Name: "Group A"}, {Name: "Group B"}}, doc.ZabbixExport.Groups)
}

func TestParseGroups(t *testing.T) {
	tests := []struct {
		name string
		list string
		want []string
	}{
		{name: "two_groups_trimmed", list: "Group A, Group B", want: []string{"Group A", "Group B"}},
		{name: "single", list: "Templates/Network devices", want: []string{"Templates/Network devices"}},
		{name: "empty_entries_skipped", list: " ,Routers,, ", want: []string{"Routers"}},
		{name: "empty", list: "", want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseGroups(tc.list))
		})
	}
}

func TestItemKey(t *testing.T) {
	valid := regexp.MustCompile(`^snmp\.[a-z0-9_]*$`)

	tests := []struct {
		name string
		want string
	}{
		{name: "sysDescr", want: "snmp.sysdescr"},
		{name: "ifHCInOctets", want: "snmp.ifhcinoctets"},
		{name: "cpu-load.1min", want: "snmp.cpu_load_1min"},
		{name: "dot1dBase_Port", want: "snmp.dot1dbase_port"},
		{name: "", want: "snmp."},
		{name: "Ünïcode", want: "snmp._n_code"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ItemKey(tc.name)
			assert.Equal(t, tc.want, got)
			assert.Regexp(t, valid, got)
		})
	}
}

func TestClassifySyntax(t *testing.T) {
	tests := []struct {
		syntax string
		want   ValueType
	}{
		{"INTEGER", ValueTypeUnsigned},
		{"Integer32", ValueTypeUnsigned},
		{"Counter32", ValueTypeUnsigned},
		{"Counter64", ValueTypeUnsigned},
		{"Gauge32", ValueTypeUnsigned},
		{"TimeTicks", ValueTypeUnsigned},
		{"OCTETSTR", ValueTypeText},
		{"DisplayString", ValueTypeText},
		{"OBJECTIDENTIFIER", ValueTypeText},
		{"Unsigned32", ValueTypeText},
		{"integer32", ValueTypeText},
		{"IpAddress", ValueTypeText},
		{"", ValueTypeText},
	}

	for _, tc := range tests {
		t.Run(tc.syntax, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifySyntax(tc.syntax))
		})
	}
}

func TestSyntaxBER(t *testing.T) {
	ber, ok := SyntaxBER("TimeTicks")
	assert.True(t, ok)
	assert.Equal(t, gosnmp.TimeTicks, ber)

	ber, ok = SyntaxBER("DisplayString")
	assert.True(t, ok)
	assert.Equal(t, gosnmp.OctetString, ber)

	_, ok = SyntaxBER("MacAddress")
	assert.False(t, ok)
}
