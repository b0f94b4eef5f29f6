package templatediff

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/debashish-mukherjee/go-mib2zabbix/internal/export"
	"github.com/debashish-mukherjee/go-mib2zabbix/internal/zabbix"
)

type Difference struct {
	Key   string
	Kind  string
	Left  *zabbix.Item
	Right *zabbix.Item
}

type Result struct {
	LeftCount  int
	RightCount int
	Diffs      []Difference
}

func (r Result) Identical() bool {
	return len(r.Diffs) == 0
}

func CompareFiles(leftPath, rightPath string) (Result, error) {
	left, err := export.ReadFile(leftPath)
	if err != nil {
		return Result{}, fmt.Errorf("read left file: %w", err)
	}
	right, err := export.ReadFile(rightPath)
	if err != nil {
		return Result{}, fmt.Errorf("read right file: %w", err)
	}
	return Compare(left, right), nil
}

// Compare matches the items of two exports by key. Repeated keys are
// compared by their first item.
func Compare(left, right *zabbix.Export) Result {
	leftItems := itemsOf(left)
	rightItems := itemsOf(right)

	leftMap := indexByKey(leftItems)
	rightMap := indexByKey(rightItems)

	keys := make([]string, 0, len(leftMap)+len(rightMap))
	for key := range leftMap {
		keys = append(keys, key)
	}
	for key := range rightMap {
		if _, ok := leftMap[key]; !ok {
			keys = append(keys, key)
		}
	}

	oidOf := func(key string) string {
		if item, ok := leftMap[key]; ok {
			return item.SNMPOID
		}
		return rightMap[key].SNMPOID
	}
	sort.Slice(keys, func(i, j int) bool {
		if c := CompareOID(oidOf(keys[i]), oidOf(keys[j])); c != 0 {
			return c < 0
		}
		return keys[i] < keys[j]
	})

	diffs := make([]Difference, 0)
	for _, key := range keys {
		l, leftOK := leftMap[key]
		r, rightOK := rightMap[key]

		switch {
		case leftOK && !rightOK:
			diffs = append(diffs, Difference{Key: key, Kind: "missing-in-right", Left: l})
		case !leftOK && rightOK:
			diffs = append(diffs, Difference{Key: key, Kind: "missing-in-left", Right: r})
		case !sameItem(l, r):
			diffs = append(diffs, Difference{Key: key, Kind: "value-mismatch", Left: l, Right: r})
		}
	}

	return Result{LeftCount: len(leftItems), RightCount: len(rightItems), Diffs: diffs}
}

func itemsOf(doc *zabbix.Export) []zabbix.Item {
	if tmpl := doc.Template(); tmpl != nil {
		return tmpl.Items
	}
	return nil
}

func indexByKey(items []zabbix.Item) map[string]*zabbix.Item {
	m := make(map[string]*zabbix.Item, len(items))
	for i := range items {
		if _, ok := m[items[i].Key]; !ok {
			m[items[i].Key] = &items[i]
		}
	}
	return m
}

func sameItem(a, b *zabbix.Item) bool {
	return a.SNMPOID == b.SNMPOID &&
		a.ValueType == b.ValueType &&
		a.Description == b.Description
}

// CompareOID orders dotted OIDs numerically arc by arc.
func CompareOID(a, b string) int {
	if a == b {
		return 0
	}
	aa := strings.Split(strings.TrimPrefix(a, "."), ".")
	bb := strings.Split(strings.TrimPrefix(b, "."), ".")
	for i := 0; i < len(aa) && i < len(bb); i++ {
		ai, aErr := strconv.Atoi(aa[i])
		bi, bErr := strconv.Atoi(bb[i])
		if aErr == nil && bErr == nil {
			if ai != bi {
				if ai < bi {
					return -1
				}
				return 1
			}
			continue
		}
		if c := strings.Compare(aa[i], bb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(aa) < len(bb):
		return -1
	case len(aa) > len(bb):
		return 1
	default:
		return 0
	}
}

// Describe renders one item for diff output.
func Describe(item *zabbix.Item) string {
	if item == nil {
		return ""
	}
	return fmt.Sprintf("%s|%s|%s", item.SNMPOID, string(item.ValueType), item.Description)
}
