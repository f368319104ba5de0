package entities

import (
	"strings"

	logger "github.com/sirupsen/logrus"
)

const databagItemExtension = ".json"

// DatabagClassifier maps <dir>/<bag>/<item>.json files to databag items.
type DatabagClassifier struct {
	matcher rootMatcher
	log     logger.FieldLogger
}

// NewDatabagClassifier creates a classifier for the given databag directory.
func NewDatabagClassifier(dir string, log logger.FieldLogger) *DatabagClassifier {
	return &DatabagClassifier{matcher: newRootMatcher(dir), log: log}
}

// Classify returns one databag item per matching change, in input order.
// Items in different bags stay independent.
func (c *DatabagClassifier) Classify(changes []PathChange) []Entity {
	result := make([]Entity, 0)
	for _, change := range changes {
		bag, item, ok := c.itemFromPath(change.Path)
		if !ok {
			continue
		}
		c.log.Infof("Databag %s item %s is %s", bag, item, entityStatus(change.Status))
		result = append(result, NewDatabagItem(bag, item, change.Status))
	}
	return result
}

func (c *DatabagClassifier) itemFromPath(p string) (string, string, bool) {
	bag, file, ok := c.matcher.match(p)
	if !ok || strings.Contains(file, "/") || !strings.HasSuffix(file, databagItemExtension) {
		return "", "", false
	}
	item := strings.TrimSuffix(file, databagItemExtension)
	if item == "" {
		return "", "", false
	}
	return bag, item, true
}
