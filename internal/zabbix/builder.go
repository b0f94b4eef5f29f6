// Package zabbix builds Zabbix template exports from extracted MIB objects.
package zabbix

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/debashish-mukherjee/go-mib2zabbix/internal/mibtext"
)

const (
	dateLayout = "2006-01-02T15:04:05Z"
	keyPrefix  = "snmp."
)

// Options configures Build.
type Options struct {
	// TemplateName is the logical template name. The template itself is
	// called "Template <TemplateName>".
	TemplateName string
	// Groups lists the template group names; empty means DefaultGroup.
	Groups []string
	// SourceFile is the MIB file path; only its base name is used.
	SourceFile string
	// Now defaults to time.Now.
	Now func() time.Time
}

// ParseGroups splits a comma separated group list. Names are trimmed and
// empty names skipped.
func ParseGroups(list string) []string {
	var groups []string
	for _, part := range strings.Split(list, ",") {
		name := strings.TrimSpace(part)
		if name != "" {
			groups = append(groups, name)
		}
	}
	return groups
}

// ItemKey derives the item key for an object name: "snmp." followed by the
// lower-cased name with every character outside [a-z0-9] replaced by "_".
func ItemKey(name string) string {
	var b strings.Builder
	b.Grow(len(keyPrefix) + len(name))
	b.WriteString(keyPrefix)
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Build returns the template export holding one item per object, in order.
func Build(objects []mibtext.Object, opts Options) *Export {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	names := opts.Groups
	if len(names) == 0 {
		names = []string{DefaultGroup}
	}
	groups := make([]Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, Group{Name: name})
	}

	displayName := "Template " + opts.TemplateName
	tmpl := Template{
		Template:       displayName,
		Name:           displayName,
		Description:    "Generated from MIB file: " + filepath.Base(opts.SourceFile),
		Groups:         groups,
		Applications:   []Application{{Name: opts.TemplateName}},
		Items:          make([]Item, 0, len(objects)),
		DiscoveryRules: []interface{}{},
	}

	for _, obj := range objects {
		tmpl.Items = append(tmpl.Items, NewItem(obj, opts.TemplateName))
	}

	return &Export{
		ZabbixExport: Body{
			Version:   ExportVersion,
			Date:      now().UTC().Format(dateLayout),
			Groups:    groups,
			Templates: []Template{tmpl},
		},
	}
}

// NewItem maps one object to an SNMP agent item of the named template.
func NewItem(obj mibtext.Object, templateName string) Item {
	return Item{
		Name:          obj.Name,
		Type:          ItemTypeSNMPAgent,
		SNMPOID:       obj.FullOID,
		Key:           ItemKey(obj.Name),
		Delay:         DefaultDelay,
		History:       DefaultHistory,
		Trends:        DefaultTrends,
		Status:        StatusEnabled,
		ValueType:     ClassifySyntax(obj.Syntax),
		Description:   obj.Description,
		Applications:  []Application{{Name: templateName}},
		Preprocessing: []interface{}{},
		Tags:          []Tag{{Tag: MIBTag, Value: templateName}},
	}
}
