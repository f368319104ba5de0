package entities

import "fmt"

// EntityKind tags the variant held by an Entity.
type EntityKind int

const (
	KindCookbook EntityKind = iota
	KindRole
	KindDatabagItem
)

func (k EntityKind) String() string {
	switch k {
	case KindCookbook:
		return "cookbook"
	case KindRole:
		return "role"
	case KindDatabagItem:
		return "databag"
	default:
		return "unknown"
	}
}

// Entity is a deployable unit derived from one or more path changes.
// Name and Status are shared by every kind; Root is only set for cookbooks
// (the configured directory owning it) and Item only for databag items.
type Entity struct {
	Kind   EntityKind
	Name   string
	Status ChangeStatus
	Root   string
	Item   string
}

// NewCookbook builds a cookbook entity rooted in the given directory.
func NewCookbook(root, name string, status ChangeStatus) Entity {
	return Entity{Kind: KindCookbook, Root: root, Name: name, Status: entityStatus(status)}
}

// NewRole builds a role entity.
func NewRole(name string, status ChangeStatus) Entity {
	return Entity{Kind: KindRole, Name: name, Status: entityStatus(status)}
}

// NewDatabagItem builds a databag item entity; name is the bag.
func NewDatabagItem(bag, item string, status ChangeStatus) Entity {
	return Entity{Kind: KindDatabagItem, Name: bag, Item: item, Status: entityStatus(status)}
}

// IsDeleted reports whether the entity must be removed from the server.
func (e Entity) IsDeleted() bool {
	return e.Status == StatusDeleted
}

func (e Entity) String() string {
	switch e.Kind {
	case KindCookbook:
		return fmt.Sprintf("%s (%s)", e.Name, e.Root)
	case KindDatabagItem:
		return e.Name + "/" + e.Item
	default:
		return e.Name
	}
}

// PartitionByStatus splits entities into deleted and modified groups,
// preserving input order inside each group.
func PartitionByStatus(list []Entity) ([]Entity, []Entity) {
	deleted := make([]Entity, 0)
	modified := make([]Entity, 0)
	for _, e := range list {
		if e.IsDeleted() {
			deleted = append(deleted, e)
		} else {
			modified = append(modified, e)
		}
	}
	return deleted, modified
}

// Names returns the entity names in order, dropping repeats.
func Names(list []Entity) []string {
	seen := make(map[string]bool, len(list))
	names := make([]string, 0, len(list))
	for _, e := range list {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		names = append(names, e.Name)
	}
	return names
}

// DatabagGroup is the set of items touched in a single bag.
type DatabagGroup struct {
	Bag   string
	Items []string
}

// GroupByBag groups databag items by bag name in first-occurrence order.
func GroupByBag(list []Entity) []DatabagGroup {
	index := make(map[string]int)
	groups := make([]DatabagGroup, 0)
	for _, e := range list {
		if e.Kind != KindDatabagItem {
			continue
		}
		i, ok := index[e.Name]
		if !ok {
			i = len(groups)
			index[e.Name] = i
			groups = append(groups, DatabagGroup{Bag: e.Name})
		}
		if !containsString(groups[i].Items, e.Item) {
			groups[i].Items = append(groups[i].Items, e.Item)
		}
	}
	return groups
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
