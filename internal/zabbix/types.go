package zabbix

// ExportVersion is the Zabbix export format generated.
const ExportVersion = "5.0"

// Fixed item settings.
const (
	ItemTypeSNMPAgent = "SNMP_AGENT"
	DefaultDelay      = "5m"
	DefaultHistory    = "2w"
	DefaultTrends     = "365d"
	StatusEnabled     = "0"
	MIBTag            = "mib"
)

// DefaultGroup is used when no template group is configured.
const DefaultGroup = "Templates/Network devices"

// Field order below is the key order of the encoded document.

type Export struct {
	ZabbixExport Body `json:"zabbix_export" yaml:"zabbix_export"`
}

type Body struct {
	Version   string     `json:"version" yaml:"version"`
	Date      string     `json:"date" yaml:"date"`
	Groups    []Group    `json:"groups" yaml:"groups"`
	Templates []Template `json:"templates" yaml:"templates"`
}

type Group struct {
	Name string `json:"name" yaml:"name"`
}

type Application struct {
	Name string `json:"name" yaml:"name"`
}

type Tag struct {
	Tag   string `json:"tag" yaml:"tag"`
	Value string `json:"value" yaml:"value"`
}

type Template struct {
	Template       string        `json:"template" yaml:"template"`
	Name           string        `json:"name" yaml:"name"`
	Description    string        `json:"description" yaml:"description"`
	Groups         []Group       `json:"groups" yaml:"groups"`
	Applications   []Application `json:"applications" yaml:"applications"`
	Items          []Item        `json:"items" yaml:"items"`
	DiscoveryRules []interface{} `json:"discovery_rules" yaml:"discovery_rules"`
}

type Item struct {
	Name          string        `json:"name" yaml:"name"`
	Type          string        `json:"type" yaml:"type"`
	SNMPOID       string        `json:"snmp_oid" yaml:"snmp_oid"`
	Key           string        `json:"key" yaml:"key"`
	Delay         string        `json:"delay" yaml:"delay"`
	History       string        `json:"history" yaml:"history"`
	Trends        string        `json:"trends" yaml:"trends"`
	Status        string        `json:"status" yaml:"status"`
	ValueType     ValueType     `json:"value_type" yaml:"value_type"`
	Description   string        `json:"description" yaml:"description"`
	Applications  []Application `json:"applications" yaml:"applications"`
	Preprocessing []interface{} `json:"preprocessing" yaml:"preprocessing"`
	Tags          []Tag         `json:"tags" yaml:"tags"`
}

// Template returns the single template of the export, or nil.
func (e *Export) Template() *Template {
	if e == nil || len(e.ZabbixExport.Templates) == 0 {
		return nil
	}
	return &e.ZabbixExport.Templates[0]
}
