package entities

import (
	"path"

	logger "github.com/sirupsen/logrus"
)

const cookbookMetadataFile = "metadata.rb"

// Classifier turns path changes into typed entities. Implementations are
// deterministic and never return nil.
type Classifier interface {
	Classify(changes []PathChange) []Entity
}

// CookbookClassifier groups path changes into cookbooks under an ordered list
// of cookbook directories.
type CookbookClassifier struct {
	matchers matcherChain
	log      logger.FieldLogger
}

// NewCookbookClassifier creates a classifier for the given cookbook
// directories. When two directories could own a path, the first one wins.
func NewCookbookClassifier(dirs []string, log logger.FieldLogger) *CookbookClassifier {
	return &CookbookClassifier{matchers: newMatcherChain(dirs), log: log}
}

type cookbookGroup struct {
	root       string
	name       string
	meaningful bool
	deleted    bool
}

// Classify groups changes by (cookbook dir, cookbook name). A cookbook moved
// between two directories therefore produces two entities that never cancel
// out. Groups touching only top-level files of the cookbook directory are
// dropped, as are paths outside every cookbook directory.
func (c *CookbookClassifier) Classify(changes []PathChange) []Entity {
	index := make(map[[2]string]int)
	groups := make([]*cookbookGroup, 0)

	for _, change := range changes {
		m, name, rest, ok := c.matchers.match(change.Path)
		if !ok {
			c.log.Debugf("[cookbook] %s is outside every cookbook dir, skipping", change.Path)
			continue
		}

		key := [2]string{m.root, name}
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, &cookbookGroup{root: m.root, name: name})
		}

		group := groups[i]
		if meaningful(rest) {
			group.meaningful = true
		}
		if change.IsDeleted() && path.Base(change.Path) == cookbookMetadataFile {
			group.deleted = true
		}
	}

	result := make([]Entity, 0, len(groups))
	for _, g := range groups {
		if !g.meaningful {
			c.log.Debugf("[cookbook] %s/%s has no meaningful changes, skipping", g.root, g.name)
			continue
		}
		status := StatusModified
		if g.deleted {
			status = StatusDeleted
		}
		c.log.Infof("Cookbook %s in %s is %s", g.name, g.root, status)
		result = append(result, NewCookbook(g.root, g.name, status))
	}
	return result
}
